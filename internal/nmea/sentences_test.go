package nmea

import (
	"math"
	"strings"
	"testing"
	"time"

	gonmea "github.com/adrianmo/go-nmea"
)

// testLocation is a fixed fix with double-digit minutes so third-party
// parsers can cross-check the rendered coordinates.
var testLocation = Location{
	Latitude:  "4746.4940",
	NS:        "N",
	Longitude: "12225.1640",
	EW:        "W",
}

var testTime = time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)

func parseSentence(t *testing.T, sentence string) gonmea.Sentence {
	t.Helper()
	s, err := gonmea.Parse(strings.TrimSpace(sentence))
	if err != nil {
		t.Fatalf("parse %q: %v", sentence, err)
	}
	return s
}

func TestRMC(t *testing.T) {
	g := NewGenerator(1, InertialNFIMU)
	sentence := g.RMC(testLocation, testTime)

	fields := sentenceFields(t, sentence)
	if len(fields) != 13 {
		t.Fatalf("RMC has %d fields, want 13: %q", len(fields), sentence)
	}
	if fields[0] != "GPRMC" || fields[2] != "A" {
		t.Errorf("bad talker or status in %q", sentence)
	}
	if fields[1] != "103045" || fields[9] != "150124" {
		t.Errorf("bad time or date in %q", sentence)
	}

	rmc, ok := parseSentence(t, sentence).(gonmea.RMC)
	if !ok {
		t.Fatalf("parsed %q as %T, want RMC", sentence, parseSentence(t, sentence))
	}
	if rmc.Validity != gonmea.ValidRMC {
		t.Errorf("validity = %q, want %q", rmc.Validity, gonmea.ValidRMC)
	}
	if math.Abs(rmc.Latitude-47.7749) > 1e-4 {
		t.Errorf("latitude = %v, want 47.7749", rmc.Latitude)
	}
	if math.Abs(rmc.Longitude+122.4194) > 1e-4 {
		t.Errorf("longitude = %v, want -122.4194", rmc.Longitude)
	}
	if rmc.Speed < 0 || rmc.Speed > 100 {
		t.Errorf("speed %v outside [0, 100]", rmc.Speed)
	}
	if rmc.Course < 0 || rmc.Course > 360 {
		t.Errorf("course %v outside [0, 360]", rmc.Course)
	}
}

func TestGGA(t *testing.T) {
	g := NewGenerator(1, InertialNFIMU)
	sentence := g.GGA(testLocation, 8, testTime)

	fields := sentenceFields(t, sentence)
	if len(fields) != 15 {
		t.Fatalf("GGA has %d fields, want 15: %q", len(fields), sentence)
	}
	if fields[0] != "GPGGA" || fields[7] != "8" {
		t.Errorf("bad talker or satellite count in %q", sentence)
	}
	if fields[10] != "M" || fields[12] != "M" {
		t.Errorf("missing altitude units in %q", sentence)
	}
	if fields[13] != "" || fields[14] != "" {
		t.Errorf("DGPS fields must be empty in %q", sentence)
	}

	gga, ok := parseSentence(t, sentence).(gonmea.GGA)
	if !ok {
		t.Fatalf("parsed %q as %T, want GGA", sentence, parseSentence(t, sentence))
	}
	if gga.NumSatellites != 8 {
		t.Errorf("satellite count = %d, want 8", gga.NumSatellites)
	}
	if math.Abs(gga.Latitude-47.7749) > 1e-4 {
		t.Errorf("latitude = %v, want 47.7749", gga.Latitude)
	}
}

func TestGLL(t *testing.T) {
	g := NewGenerator(1, InertialNFIMU)
	sentence := g.GLL(testLocation, testTime)

	fields := sentenceFields(t, sentence)
	if len(fields) != 7 {
		t.Fatalf("GLL has %d fields, want 7: %q", len(fields), sentence)
	}
	if fields[6] != "A" {
		t.Errorf("GLL status = %q, want A", fields[6])
	}

	gll, ok := parseSentence(t, sentence).(gonmea.GLL)
	if !ok {
		t.Fatalf("parsed %q as %T, want GLL", sentence, parseSentence(t, sentence))
	}
	if math.Abs(gll.Longitude+122.4194) > 1e-4 {
		t.Errorf("longitude = %v, want -122.4194", gll.Longitude)
	}
}

func TestGSA(t *testing.T) {
	g := NewGenerator(1, InertialNFIMU)

	sats := make([]Satellite, 12)
	for i := range sats {
		sats[i] = Satellite{PRN: i + 1, Constellation: GPS}
	}
	sentence := g.GSA(sats)

	fields := sentenceFields(t, sentence)
	if len(fields) != 18 {
		t.Fatalf("GSA has %d fields, want 18: %q", len(fields), sentence)
	}
	if fields[1] != "A" {
		t.Errorf("GSA mode = %q, want A", fields[1])
	}

	gsa, ok := parseSentence(t, sentence).(gonmea.GSA)
	if !ok {
		t.Fatalf("parsed %q as %T, want GSA", sentence, parseSentence(t, sentence))
	}
	if n := len(gsa.SV); n < 4 || n > 12 {
		t.Errorf("%d PRNs used, want between 4 and 12", n)
	}
	// Used PRNs fill the leading slots in snapshot order.
	for i, sv := range gsa.SV {
		if want := fields[3+i]; sv != want {
			t.Errorf("slot %d = %q, want %q", i, sv, want)
		}
	}
}

func TestGSAFewerSatellitesThanMinimum(t *testing.T) {
	g := NewGenerator(1, InertialNFIMU)

	sats := []Satellite{
		{PRN: 5, Constellation: GPS},
		{PRN: 7, Constellation: GPS},
		{PRN: 9, Constellation: GPS},
	}
	fields := sentenceFields(t, g.GSA(sats))

	if fields[3] != "5" || fields[4] != "7" || fields[5] != "9" {
		t.Errorf("leading slots = %v, want 5 7 9", fields[3:6])
	}
	for i := 6; i < 15; i++ {
		if fields[i] != "" {
			t.Errorf("slot field %d = %q, want empty", i, fields[i])
		}
	}
}

func TestGSVChunking(t *testing.T) {
	g := NewGenerator(1, InertialNFIMU)

	sats := make([]Satellite, 6)
	for i := range sats {
		sats[i] = Satellite{PRN: i + 1, Constellation: GPS}
	}
	messages := g.GSV(sats, GPS)
	if len(messages) != 2 {
		t.Fatalf("6 satellites yield %d messages, want 2", len(messages))
	}

	first := sentenceFields(t, messages[0])
	if len(first) != 20 {
		t.Errorf("full message has %d fields, want 20", len(first))
	}
	if first[0] != "GPGSV" || first[1] != "2" || first[2] != "1" || first[3] != "6" {
		t.Errorf("bad first header: %v", first[:4])
	}

	second := sentenceFields(t, messages[1])
	if len(second) != 18 {
		t.Fatalf("padded message has %d fields, want 18", len(second))
	}
	if second[1] != "2" || second[2] != "2" || second[3] != "6" {
		t.Errorf("bad second header: %v", second[:4])
	}
	// Two missing satellites pad with three empty fields each.
	for i := 12; i < 18; i++ {
		if second[i] != "" {
			t.Errorf("pad field %d = %q, want empty", i, second[i])
		}
	}
}

func TestGSVTalkerIDs(t *testing.T) {
	g := NewGenerator(1, InertialNFIMU)

	tests := []struct {
		constellation Constellation
		prn           int
		id            string
	}{
		{GPS, 12, "GPGSV"},
		{GLONASS, 70, "GLGSV"},
		{Galileo, 210, "GAGSV"},
		{Beidou, 310, "GBGSV"},
		{QZSS, 195, "GQZSV"},
	}
	for _, tt := range tests {
		sats := []Satellite{{PRN: tt.prn, Constellation: tt.constellation}}
		messages := g.GSV(sats, tt.constellation)
		if len(messages) != 1 {
			t.Fatalf("%v: %d messages, want 1", tt.constellation, len(messages))
		}
		if fields := sentenceFields(t, messages[0]); fields[0] != tt.id {
			t.Errorf("%v talker = %q, want %q", tt.constellation, fields[0], tt.id)
		}
	}
}

func TestGSVEmptyConstellation(t *testing.T) {
	g := NewGenerator(1, InertialNFIMU)

	sats := []Satellite{{PRN: 12, Constellation: GPS}}
	if messages := g.GSV(sats, GLONASS); messages != nil {
		t.Errorf("empty constellation yields %v, want no messages", messages)
	}
}

func TestNFIMU(t *testing.T) {
	g := NewGenerator(1, InertialNFIMU)

	sawCalibrated := false
	sawUncalibrated := false
	for i := 0; i < 50; i++ {
		sentence := g.NFIMU()
		verifyChecksum(t, sentence)

		fields := sentenceFields(t, sentence)
		if len(fields) != 15 {
			t.Fatalf("NFIMU has %d fields, want 15: %q", len(fields), sentence)
		}
		switch fields[1] {
		case "1":
			sawCalibrated = true
			for j := 9; j < 15; j++ {
				if fields[j] == "" {
					t.Errorf("calibrated field %d empty in %q", j, sentence)
				}
			}
		case "0":
			sawUncalibrated = true
			for j := 9; j < 15; j++ {
				if fields[j] != "" {
					t.Errorf("uncalibrated field %d = %q, want empty", j, fields[j])
				}
			}
		default:
			t.Fatalf("calibration status = %q, want 0 or 1", fields[1])
		}
	}
	if !sawCalibrated || !sawUncalibrated {
		t.Error("expected both calibration states across 50 draws")
	}
}

func TestIMUAG(t *testing.T) {
	g := NewGenerator(1, InertialIMUAG)
	sentence := g.IMUAG(testTime)
	verifyChecksum(t, sentence)

	fields := sentenceFields(t, sentence)
	if len(fields) != 11 {
		t.Fatalf("IMUAG has %d fields, want 11: %q", len(fields), sentence)
	}
	if fields[0] != "IMUAG" || fields[1] != "103045" {
		t.Errorf("bad talker or time in %q", sentence)
	}
}
