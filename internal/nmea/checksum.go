package nmea

import "fmt"

// Checksum XOR-folds every byte of body and renders the result as two
// uppercase hex digits. body is everything between '$' and '*'.
func Checksum(body string) string {
	var sum byte
	for i := 0; i < len(body); i++ {
		sum ^= body[i]
	}
	return fmt.Sprintf("%02X", sum)
}

// Sentence wraps body into a complete checksummed NMEA sentence
// terminated with CRLF.
func Sentence(body string) string {
	return fmt.Sprintf("$%s*%s\r\n", body, Checksum(body))
}
