package services

import (
	"regexp"
	"strconv"
	"strings"
)

// Patterns for the blocks of an assignment report. Compiled once at package
// level; the report generator emits exactly this grammar.
var (
	dayPattern        = regexp.MustCompile(`^(Monday|Tuesday|Wednesday|Thursday|Friday):`)
	periodPattern     = regexp.MustCompile(`^Period\s+(\d+):`)
	assignmentPattern = regexp.MustCompile(`^-\s*(.+?)\s*\((.+?)\):\s*(.+?)\s*\(absent\)\s*=>\s*(.+)$`)
	substituteSuffix  = regexp.MustCompile(`\s*\(substitute\)\s*$`)
)

var dayShort = map[string]string{
	"Monday":    "Mon",
	"Tuesday":   "Tue",
	"Wednesday": "Wed",
	"Thursday":  "Thu",
	"Friday":    "Fri",
}

// ParsedAssignment is one (day, period, class, subject, names) tuple lifted
// from a possibly hand-edited report. SubstituteName is the raw edited text;
// empty means the line carried the no-substitute marker.
type ParsedAssignment struct {
	Day            string
	Period         int
	ClassID        string
	SubjectText    string
	AbsentName     string
	SubstituteName string
}

// ParseWarning records a line that looked like an assignment but could not be
// used. Warnings are reported, never fatal: the text may have been manually
// and imperfectly edited, so partial success is the expected outcome.
type ParseWarning struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// ParseEditedReport extracts assignment tuples from a report message.
// Malformed or out-of-context lines are skipped with a recorded warning.
func ParseEditedReport(text string) ([]ParsedAssignment, []ParseWarning) {
	var assignments []ParsedAssignment
	var warnings []ParseWarning

	currentDay := ""
	currentPeriod := 0

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := dayPattern.FindStringSubmatch(line); m != nil {
			currentDay = dayShort[m[1]]
			currentPeriod = 0
			continue
		}

		if m := periodPattern.FindStringSubmatch(line); m != nil {
			p, err := strconv.Atoi(m[1])
			if err != nil || p < 1 {
				warnings = append(warnings, ParseWarning{Line: i + 1, Text: line, Reason: "invalid period number"})
				continue
			}
			currentPeriod = p
			continue
		}

		m := assignmentPattern.FindStringSubmatch(line)
		if m == nil {
			// Only lines shaped like assignments warrant a warning;
			// headers, summary and instructions are expected noise.
			if strings.HasPrefix(line, "-") && strings.Contains(line, "=>") {
				warnings = append(warnings, ParseWarning{Line: i + 1, Text: line, Reason: "unrecognized assignment line"})
			}
			continue
		}

		if currentDay == "" || currentPeriod == 0 {
			warnings = append(warnings, ParseWarning{Line: i + 1, Text: line, Reason: "assignment line outside day/period context"})
			continue
		}

		substitute := strings.TrimSpace(m[4])
		if strings.Contains(strings.ToLower(substitute), NoSubstituteMarker) {
			substitute = ""
		} else {
			substitute = strings.TrimSpace(substituteSuffix.ReplaceAllString(substitute, ""))
		}

		assignments = append(assignments, ParsedAssignment{
			Day:            currentDay,
			Period:         currentPeriod,
			ClassID:        strings.TrimSpace(m[2]),
			SubjectText:    strings.TrimSpace(m[1]),
			AbsentName:     strings.TrimSpace(m[3]),
			SubstituteName: substitute,
		})
	}

	return assignments, warnings
}
