package core

import "strings"

// SplitLines breaks engine output into trimmed, non-empty lines. Tesseract ends
// pages with a form feed, which is treated as whitespace.
func SplitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
