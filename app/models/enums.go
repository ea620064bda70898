package models

import "strconv"

// Level defines the age bracket a class belongs to and a teacher can cover.
type Level string

const (
	LowerElementary Level = "lower_elementary"
	UpperElementary Level = "upper_elementary"
	Middle          Level = "middle"
	UnknownLevel    Level = "unknown"
)

// AssignmentStatus defines the lifecycle states of an assignment record.
type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentFinalized AssignmentStatus = "finalized"
	AssignmentExpired   AssignmentStatus = "expired"
)

// MatchTier identifies which resolution strategy produced a name match.
type MatchTier int

const (
	TierNone       MatchTier = 0
	TierExact      MatchTier = 1
	TierNormalized MatchTier = 2
	TierFuzzy      MatchTier = 3
	TierAI         MatchTier = 4
)

// SchoolDays lists the teaching days in timetable order.
var SchoolDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// DayNames maps short day ids to the full names used in reports.
var DayNames = map[string]string{
	"Mon": "Monday",
	"Tue": "Tuesday",
	"Wed": "Wednesday",
	"Thu": "Thursday",
	"Fri": "Friday",
}

// ClassLevel classifies a class id into its level bracket.
// P1-P3 are lower elementary, P4-P6 upper elementary, M1-M3 middle school.
func ClassLevel(classID string) Level {
	if len(classID) < 2 {
		return UnknownLevel
	}
	grade, err := strconv.Atoi(classID[1:])
	if err != nil {
		return UnknownLevel
	}
	switch classID[0] {
	case 'P':
		if grade <= 3 {
			return LowerElementary
		}
		return UpperElementary
	case 'M':
		return Middle
	}
	return UnknownLevel
}

// DayIndex returns the position of a short day id within the school week,
// or -1 if the id is not a teaching day.
func DayIndex(day string) int {
	for i, d := range SchoolDays {
		if d == day {
			return i
		}
	}
	return -1
}
