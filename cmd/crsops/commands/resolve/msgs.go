package resolve

// Message constants
const (
	MsgShort = "Resolve the operation between two reference systems"
	MsgLong  = `Resolve looks up the coordinate operation transforming coordinates of
the source reference system into the target one. When only the opposite
direction is defined, the inverse operation is derived and marked as
such in the output.`

	MsgExample = `  # Resolve the ED50 to WGS 84 operation
  crsops resolve 4230 4326

  # Derive the inverse direction
  crsops resolve 4326 4230`
)
