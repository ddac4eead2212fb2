package records

import (
	"strconv"
	"strings"
)

// Scalar cell encoding shared by the question and trend records. Booleans
// are stored as the literals "True"/"False", integers as plain decimal,
// floats always with a decimal point so zero round-trips as "0.0".

func formatBool(b bool) []byte {
	if b {
		return []byte("True")
	}
	return []byte("False")
}

func parseBool(v []byte) bool {
	return string(v) == "True"
}

func formatInt(n int64) []byte {
	return []byte(strconv.FormatInt(n, 10))
}

func parseInt(v []byte) int64 {
	n, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func formatFloat(f float64) []byte {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return []byte(s)
}

func parseFloat(v []byte) float64 {
	f, err := strconv.ParseFloat(string(v), 64)
	if err != nil {
		return 0
	}
	return f
}
