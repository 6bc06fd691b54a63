package operations

// Message constants
const (
	MsgShort = "List the operations between two reference systems"
	MsgLong  = `Operations collects every known coordinate operation between the two
reference systems. References may carry the authority prefix, such as
EPSG:4326. An empty result means no operation is defined for the pair.`

	MsgExample = `  # List operations between ED50 and WGS 84
  crsops operations EPSG:4230 EPSG:4326`

	MsgNoOperations = "No operations found."
)
