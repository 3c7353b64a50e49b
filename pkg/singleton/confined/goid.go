package confined

import "runtime"

// goid returns the id of the calling goroutine, read from the header line of
// its stack trace ("goroutine 123 [running]:"). It returns 0 if the header
// cannot be parsed.
func goid() int64 {
	// Only the first line is needed.
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parseGoid(buf[:n])
}

// parseGoid extracts the numeric id from a stack header.
func parseGoid(buf []byte) int64 {
	const prefix = "goroutine "
	if len(buf) < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}

	var id int64
	for _, c := range buf[len(prefix):] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}
