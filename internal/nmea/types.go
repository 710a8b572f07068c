package nmea

// Constellation identifies the satellite system a PRN belongs to.
type Constellation int

const (
	GPS Constellation = iota
	GLONASS
	Galileo
	Beidou
	QZSS
)

// Constellations lists every system in the fixed emission order used
// when building GSV runs for a cycle.
var Constellations = []Constellation{GPS, GLONASS, Galileo, Beidou, QZSS}

func (c Constellation) String() string {
	switch c {
	case GPS:
		return "GPS"
	case GLONASS:
		return "GLONASS"
	case Galileo:
		return "Galileo"
	case Beidou:
		return "Beidou"
	case QZSS:
		return "QZSS"
	}
	return "unknown"
}

// gsvID returns the GSV message ID for the constellation. QZSS uses
// the literal "GQZSV" rather than a standard 2-letter talker.
func (c Constellation) gsvID() string {
	switch c {
	case GLONASS:
		return "GLGSV"
	case Galileo:
		return "GAGSV"
	case Beidou:
		return "GBGSV"
	case QZSS:
		return "GQZSV"
	default:
		return "GPGSV"
	}
}

// prnRange returns the inclusive PRN range assigned to the
// constellation. The ranges never overlap.
func (c Constellation) prnRange() (min, max int) {
	switch c {
	case GLONASS:
		return 65, 96
	case Galileo:
		return 201, 237
	case Beidou:
		return 301, 336
	case QZSS:
		return 193, 200
	default:
		return 1, 32
	}
}

// countRange returns the inclusive range of satellites drawn for the
// constellation in one cycle.
func (c Constellation) countRange() (min, max int) {
	if c == QZSS {
		return 1, 4
	}
	return 4, 12
}

// Satellite is one drawn satellite within a cycle's snapshot.
type Satellite struct {
	PRN           int
	Constellation Constellation
}

// Location is a position fix pre-rendered in NMEA degrees-minutes
// form. It is drawn once per cycle and shared by every builder in
// that cycle so RMC, GGA and GLL report the same coordinates.
type Location struct {
	Latitude  string // DDMM.MMMM
	NS        string // N or S
	Longitude string // DDDMM.MMMM
	EW        string // E or W
}
