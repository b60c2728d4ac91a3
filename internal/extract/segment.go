package extract

import "strings"

// headerMarkers are the line markers that start a new sub-document when
// several reports of the same type are bundled into one blob.
var headerMarkers = []string{
	"POLICE REPORT",
	"INCIDENT REPORT",
	"ACCIDENT REPORT",
	"REPORT NUMBER",
	"REPORT #",
}

// minSegmentWords filters out false-positive segments such as a table of
// contents entry that happens to contain a marker.
const minSegmentWords = 50

// HasReportMarkers reports whether the text mentions any incident-report
// marker at all. Sub-report extraction is skipped entirely when it returns
// false.
func HasReportMarkers(text string) bool {
	upper := strings.ToUpper(text)
	for _, marker := range headerMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// Segment splits combined document text into candidate sub-documents. A new
// segment starts at each marker line, but only once the current segment has
// content, so a marker on the very first line never triggers a split. If
// fewer than two segments survive the length filter the whole input is one
// segment: the single-document case must not be misreported as "two reports,
// one empty".
func Segment(combined string) []string {
	var segments []string
	var current []string

	for _, line := range strings.Split(combined, "\n") {
		upper := strings.ToUpper(line)
		isMarker := false
		for _, marker := range headerMarkers {
			if strings.Contains(upper, marker) {
				isMarker = true
				break
			}
		}

		if isMarker && len(current) > 0 {
			segments = append(segments, strings.Join(current, "\n"))
			current = []string{line}
		} else {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		segments = append(segments, strings.Join(current, "\n"))
	}

	var kept []string
	for _, seg := range segments {
		if len(strings.Fields(seg)) >= minSegmentWords {
			kept = append(kept, seg)
		}
	}

	if len(kept) < 2 {
		return []string{combined}
	}
	return kept
}
