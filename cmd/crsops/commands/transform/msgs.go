package transform

// Message constants
const (
	MsgShort = "Transform a coordinate between two reference systems"
	MsgLong  = `Transform resolves the operation between the two reference systems and
applies it to the given coordinate.`

	MsgExample = `  # Shift a point from ED50 to WGS 84
  crsops transform 4230 4326 3.084896111 39.592654167`
)
