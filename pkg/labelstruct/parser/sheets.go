package parser

import "strings"

// DefaultSheetMarkers are the accepted spellings of the cutting plans sheet name.
var DefaultSheetMarkers = []string{"DİLME PLANLARI", "DILME PLANLARI", "DİLME"}

// SelectSheet returns the first sheet whose name contains any marker.
// When none matches it falls back to the first sheet and reports false.
func SelectSheet(names []string, markers []string) (string, bool) {
	for _, name := range names {
		for _, marker := range markers {
			if marker != "" && strings.Contains(name, marker) {
				return name, true
			}
		}
	}

	if len(names) == 0 {
		return "", false
	}
	return names[0], false
}
