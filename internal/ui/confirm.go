package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm prints a y/N prompt and reads one line. Anything but "y"/"yes"
// declines.
func Confirm(w io.Writer, r io.Reader, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", prompt)

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
