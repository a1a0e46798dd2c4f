package task

import "regexp"

var urlRe = regexp.MustCompile(`(https?://[^\s)]+|file://[^\s)]+)`)

// URLs extracts every http(s) and file URL from a task line, in order.
// Launching them is the presentation layer's business, not the core's.
func URLs(line string) []string {
	return urlRe.FindAllString(line, -1)
}
