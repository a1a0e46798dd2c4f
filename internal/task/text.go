package task

import "strings"

// metadata markers that end the free-text portion of a line.
var metaMarkers = []string{" +", " @", " due:", " rec:", " t:", " h:"}

// SplitMetadata splits a line into its free-text head and the metadata tail
// starting at the first tag token. Editors use this to place the cursor (or
// scope an edit) before the metadata. A line without tags has an empty
// tail.
func SplitMetadata(line string) (text, metadata string) {
	cut := len(line)
	for _, marker := range metaMarkers {
		if i := strings.Index(line, marker); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(line[:cut]), strings.TrimSpace(line[cut:])
}
