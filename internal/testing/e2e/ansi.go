package e2e

import (
	"regexp"
	"strings"
)

// ANSI escape code patterns
var (
	ansiEscape  = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)
	clearScreen = "\x1b[2J"
)

// StripANSI removes all ANSI escape codes from a string
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// LastFrame returns the text drawn after the most recent screen clear,
// without escape codes and with carriage returns dropped.
func LastFrame(output string) string {
	if i := strings.LastIndex(output, clearScreen); i >= 0 {
		output = output[i+len(clearScreen):]
	}
	return strings.ReplaceAll(StripANSI(output), "\r", "")
}

// StatusLine finds the "unit=... kind=..." line of a frame.
func StatusLine(frame string) string {
	for _, line := range strings.Split(frame, "\n") {
		if strings.HasPrefix(line, "unit=") {
			return line
		}
	}
	return ""
}
