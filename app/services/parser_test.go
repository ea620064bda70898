package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `Substitute Assignment Report
Date: 2026-01-12
==============================

Summary:
  Absent teachers: 1
  Periods needing cover: 2
  Covered: 1 (50.0%)

Assignments:
Monday:
  Period 2:
    - Mathematics (P2): Kru Somchai (absent) => Kru Pimol (substitute)
  Period 5:
    - Mathematics (P2): Kru Somchai (absent) => no substitute found

------------------------------
Instructions:
  To correct an assignment, edit the substitute name after "=>"
  and send this message back.
`

func TestParseEditedReport(t *testing.T) {
	assignments, warnings := ParseEditedReport(sampleReport)

	assert.Empty(t, warnings)
	require.Len(t, assignments, 2)

	assert.Equal(t, ParsedAssignment{
		Day:            "Mon",
		Period:         2,
		ClassID:        "P2",
		SubjectText:    "Mathematics",
		AbsentName:     "Kru Somchai",
		SubstituteName: "Kru Pimol",
	}, assignments[0])

	assert.Equal(t, 5, assignments[1].Period)
	assert.Equal(t, "", assignments[1].SubstituteName, "marker means cleared substitute")
}

func TestParseEditedSubstituteWithoutSuffix(t *testing.T) {
	// Operators editing by hand rarely keep the "(substitute)" suffix.
	text := "Monday:\n  Period 2:\n    - Mathematics (P2): Kru Somchai (absent) => Kru Duangjai\n"
	assignments, warnings := ParseEditedReport(text)

	assert.Empty(t, warnings)
	require.Len(t, assignments, 1)
	assert.Equal(t, "Kru Duangjai", assignments[0].SubstituteName)
}

func TestParseNoSubstituteMarkerIsCaseInsensitive(t *testing.T) {
	text := "Monday:\n  Period 2:\n    - Mathematics (P2): Kru Somchai (absent) => No Substitute Found\n"
	assignments, _ := ParseEditedReport(text)

	require.Len(t, assignments, 1)
	assert.Equal(t, "", assignments[0].SubstituteName)
}

func TestParseWarnsOnMalformedAssignmentLines(t *testing.T) {
	text := `Monday:
  Period 2:
    - garbled line => someone
    - Mathematics (P2): Kru Somchai (absent) => Kru Pimol
`
	assignments, warnings := ParseEditedReport(text)

	require.Len(t, assignments, 1)
	require.Len(t, warnings, 1)
	assert.Equal(t, 3, warnings[0].Line)
	assert.Equal(t, "unrecognized assignment line", warnings[0].Reason)
}

func TestParseWarnsOnAssignmentOutsideContext(t *testing.T) {
	text := "- Mathematics (P2): Kru Somchai (absent) => Kru Pimol\n"
	assignments, warnings := ParseEditedReport(text)

	assert.Empty(t, assignments)
	require.Len(t, warnings, 1)
	assert.Equal(t, "assignment line outside day/period context", warnings[0].Reason)
}

func TestParseWarnsOnInvalidPeriod(t *testing.T) {
	text := "Monday:\nPeriod 0:\n    - Mathematics (P2): Kru Somchai (absent) => Kru Pimol\n"
	assignments, warnings := ParseEditedReport(text)

	assert.Empty(t, assignments)
	require.Len(t, warnings, 2)
	assert.Equal(t, "invalid period number", warnings[0].Reason)
}

func TestParseIgnoresHeaderAndInstructionNoise(t *testing.T) {
	assignments, warnings := ParseEditedReport("Summary:\n  Covered: 1 (50.0%)\nInstructions:\n  edit after \"=>\"\n")
	assert.Empty(t, assignments)
	assert.Empty(t, warnings)
}
