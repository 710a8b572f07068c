package nmea

import (
	"fmt"
	"strings"
	"time"
)

// RMC builds the recommended-minimum sentence. Status is always "A";
// speed over ground and course are independent draws.
func (g *Generator) RMC(loc Location, now time.Time) string {
	speed := g.uniform(0, 100)
	course := g.uniform(0, 360)

	body := fmt.Sprintf("GPRMC,%s,A,%s,%s,%s,%s,%.1f,%.1f,%s,,,",
		utcTime(now),
		loc.Latitude, loc.NS,
		loc.Longitude, loc.EW,
		speed, course,
		utcDate(now))
	return Sentence(body)
}

// GGA builds the fix-data sentence. numSats is supplied by the caller
// so the cycle aggregator controls the draw.
func (g *Generator) GGA(loc Location, numSats int, now time.Time) string {
	fixQuality := g.intn(0, 5)
	hdop := g.uniform(0.5, 2.5)
	altitude := g.uniform(10.0, 100.0)
	geoidSep := g.uniform(-50.0, 50.0)

	body := fmt.Sprintf("GPGGA,%s,%s,%s,%s,%s,%d,%d,%.1f,%.1f,M,%.1f,M,,",
		utcTime(now),
		loc.Latitude, loc.NS,
		loc.Longitude, loc.EW,
		fixQuality, numSats,
		hdop, altitude, geoidSep)
	return Sentence(body)
}

// GLL builds the geographic-position sentence.
func (g *Generator) GLL(loc Location, now time.Time) string {
	body := fmt.Sprintf("GPGLL,%s,%s,%s,%s,%s,A",
		loc.Latitude, loc.NS,
		loc.Longitude, loc.EW,
		utcTime(now))
	return Sentence(body)
}

// GSA builds the DOP-and-active-satellites sentence. The first
// satellitesUsed PRNs from the snapshot fill the slots in insertion
// order; exactly 12 PRN-or-empty slots are always emitted.
func (g *Generator) GSA(sats []Satellite) string {
	fixType := g.intn(1, 3)

	satellitesUsed := g.intn(4, 12)
	if satellitesUsed > len(sats) {
		satellitesUsed = len(sats)
	}
	slots := make([]string, 12)
	for i := 0; i < satellitesUsed; i++ {
		slots[i] = fmt.Sprintf("%d", sats[i].PRN)
	}

	pdop := g.uniform(1.0, 5.0)
	hdop := g.uniform(1.0, 5.0)
	vdop := g.uniform(1.0, 5.0)

	body := fmt.Sprintf("GPGSA,A,%d,%s,%.1f,%.1f,%.1f",
		fixType, strings.Join(slots, ","), pdop, hdop, vdop)
	return Sentence(body)
}

// GSV builds the satellites-in-view run for one constellation,
// chunked four satellites per message. Elevation, azimuth and SNR are
// independent draws per satellite. A constellation with no satellites
// in the snapshot yields no messages.
func (g *Generator) GSV(sats []Satellite, c Constellation) []string {
	var inView []Satellite
	for _, s := range sats {
		if s.Constellation == c {
			inView = append(inView, s)
		}
	}
	total := len(inView)
	if total == 0 {
		return nil
	}

	const satsPerMessage = 4
	totalMessages := (total + satsPerMessage - 1) / satsPerMessage

	sentences := make([]string, 0, totalMessages)
	for msg := 1; msg <= totalMessages; msg++ {
		var b strings.Builder
		fmt.Fprintf(&b, "%s,%d,%d,%d", c.gsvID(), totalMessages, msg, total)

		start := (msg - 1) * satsPerMessage
		end := start + satsPerMessage
		if end > total {
			end = total
		}
		for _, s := range inView[start:end] {
			fmt.Fprintf(&b, ",%d,%d,%d,%d",
				s.PRN, g.intn(0, 90), g.intn(0, 359), g.intn(0, 50))
		}
		for i := end - start; i < satsPerMessage; i++ {
			b.WriteString(",,,")
		}
		sentences = append(sentences, Sentence(b.String()))
	}
	return sentences
}

// NFIMU builds the proprietary inertial sentence. When the drawn
// calibration status is 1 the vehicle-frame fields repeat the base
// readings plus small independent noise; otherwise all six
// vehicle-frame fields are empty.
func (g *Generator) NFIMU() string {
	calibrated := g.intn(0, 1)
	temperature := g.uniform(10, 80)
	accX := g.uniform(-100, 100)
	accY := g.uniform(-100, 100)
	accZ := g.uniform(-100, 100)
	gyroX := g.uniform(-2*3.14, 2*3.14)
	gyroY := g.uniform(-2*3.14, 2*3.14)
	gyroZ := g.uniform(-2*3.14, 2*3.14)

	var b strings.Builder
	fmt.Fprintf(&b, "NFIMU,%d,%.4f,%.4f,%.4f,%.4f,%.4f,%.4f,%.4f",
		calibrated, temperature, accX, accY, accZ, gyroX, gyroY, gyroZ)

	if calibrated == 1 {
		fmt.Fprintf(&b, ",%.4f,%.4f,%.4f,%.4f,%.4f,%.4f",
			accX+g.uniform(-10, 10),
			accY+g.uniform(-10, 10),
			accZ+g.uniform(-10, 10),
			gyroX+g.uniform(-2*3.14*0.1, 2*3.14*0.1),
			gyroY+g.uniform(-2*3.14*0.1, 2*3.14*0.1),
			gyroZ+g.uniform(-2*3.14*0.1, 2*3.14*0.1))
	} else {
		b.WriteString(",,,,,,")
	}
	return Sentence(b.String())
}

// IMUAG builds the alternative attitude/inertial sentence: UTC time,
// roll/pitch/yaw and body-frame accelerometer and gyroscope readings.
func (g *Generator) IMUAG(now time.Time) string {
	body := fmt.Sprintf("IMUAG,%s,%.4f,%.4f,%.4f,%.4f,%.4f,%.4f,%.4f,%.4f,%.4f",
		utcTime(now),
		g.uniform(-180, 180), g.uniform(-180, 180), g.uniform(-180, 180),
		g.uniform(-10, 10), g.uniform(-10, 10), g.uniform(-10, 10),
		g.uniform(-10, 10), g.uniform(-10, 10), g.uniform(-10, 10))
	return Sentence(body)
}
