package repositories

import (
	"strconv"
	"strings"
)

// The flat tables are all strings; these helpers keep the permissive-read
// policy in one place. Blank or unparseable numbers read as 0.

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Active flags are stored as Yes/No, matching the historic data files.
func parseActive(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true
	}
	return false
}

func formatActive(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
