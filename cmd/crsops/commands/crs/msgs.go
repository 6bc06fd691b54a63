package crs

// Message constants
const (
	MsgShort = "Describe a reference system"
	MsgLong  = `Crs decodes an authority code into the reference system it names.`

	MsgExample = `  # Describe WGS 84
  crsops crs 4326
  crsops crs EPSG:4326`
)
