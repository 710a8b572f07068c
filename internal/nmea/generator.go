package nmea

import (
	"math/rand"
	"strings"
	"time"
)

// InertialSentence selects which inertial sentence closes a cycle.
type InertialSentence string

const (
	InertialNFIMU InertialSentence = "nfimu"
	InertialIMUAG InertialSentence = "imuag"
)

// Generator produces random but self-consistent NMEA cycles. It owns
// the process-wide random source; it must only be used from the
// producer goroutine.
type Generator struct {
	rng      *rand.Rand
	inertial InertialSentence
}

// NewGenerator creates a generator seeded once for the whole run.
// A zero seed picks a time-based seed.
func NewGenerator(seed int64, inertial InertialSentence) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if inertial == "" {
		inertial = InertialNFIMU
	}
	return &Generator{
		rng:      rand.New(rand.NewSource(seed)),
		inertial: inertial,
	}
}

// uniform draws a float64 in [min, max).
func (g *Generator) uniform(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}

// intn draws an int in [min, max].
func (g *Generator) intn(min, max int) int {
	return min + g.rng.Intn(max-min+1)
}

// NextLocation draws a fresh position fix, latitude uniform in
// [-90, 90] and longitude uniform in [-180, 180].
func (g *Generator) NextLocation() Location {
	var loc Location
	lat := g.uniform(-90, 90)
	loc.Latitude, loc.NS = FormatCoordinate(lat, 2, "N", "S")
	lon := g.uniform(-180, 180)
	loc.Longitude, loc.EW = FormatCoordinate(lon, 3, "E", "W")
	return loc
}

// NextSatellites draws one constellation snapshot, constellation-major
// in the fixed enumeration order. PRNs are drawn independently, so a
// PRN can repeat within a constellation.
func (g *Generator) NextSatellites() []Satellite {
	var sats []Satellite
	for _, c := range Constellations {
		minCount, maxCount := c.countRange()
		minPRN, maxPRN := c.prnRange()
		n := g.intn(minCount, maxCount)
		for i := 0; i < n; i++ {
			sats = append(sats, Satellite{PRN: g.intn(minPRN, maxPRN), Constellation: c})
		}
	}
	return sats
}

// Cycle builds one complete reporting burst: RMC, GGA, GSA, one GSV
// run per non-empty constellation, GLL and the inertial sentence, all
// sharing a single location fix and satellite snapshot.
func (g *Generator) Cycle(now time.Time) string {
	loc := g.NextLocation()
	sats := g.NextSatellites()

	var b strings.Builder
	b.WriteString(g.RMC(loc, now))
	b.WriteString(g.GGA(loc, g.intn(4, 12), now))
	b.WriteString(g.GSA(sats))
	for _, c := range Constellations {
		for _, s := range g.GSV(sats, c) {
			b.WriteString(s)
		}
	}
	b.WriteString(g.GLL(loc, now))
	if g.inertial == InertialIMUAG {
		b.WriteString(g.IMUAG(now))
	} else {
		b.WriteString(g.NFIMU())
	}
	return b.String()
}
