package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"banrai-schools/app/models"
)

func testSchedule() []models.ScheduleEntry {
	return []models.ScheduleEntry{
		{TeacherID: "T01", Day: "Mon", Period: 2, ClassID: "P2", SubjectID: "MATH"},
		{TeacherID: "T02", Day: "Mon", Period: 2, ClassID: "P5", SubjectID: "SCI"},
		{TeacherID: "T03", Day: "Mon", Period: 1, ClassID: "M1", SubjectID: "ENG"},
		{TeacherID: "T04", Day: "Mon", Period: 1, ClassID: "P2", SubjectID: "THAI"},
		{TeacherID: "T04", Day: "Mon", Period: 2, ClassID: "P3", SubjectID: "THAI"},
		{TeacherID: "T04", Day: "Mon", Period: 3, ClassID: "P4", SubjectID: "THAI"},
		{TeacherID: "T04", Day: "Mon", Period: 4, ClassID: "P5", SubjectID: "THAI"},
	}
}

func TestEligibleCandidatesExcludesAbsent(t *testing.T) {
	tracker := newLoadTracker("Mon", testSchedule())
	period := models.AbsencePeriod{TeacherID: "T01", Date: "2026-01-12", Day: "Mon", Period: 3, ClassID: "P2", SubjectID: "MATH"}

	eligible := EligibleCandidates(period, []string{"T01", "T02", "T03"}, map[string]bool{"T01": true}, tracker, 4)

	assert.NotContains(t, eligible, "T01")
	assert.ElementsMatch(t, []string{"T02", "T03"}, eligible)
}

func TestEligibleCandidatesExcludesOccupiedSlot(t *testing.T) {
	tracker := newLoadTracker("Mon", testSchedule())
	period := models.AbsencePeriod{TeacherID: "T01", Date: "2026-01-12", Day: "Mon", Period: 2, ClassID: "P2", SubjectID: "MATH"}

	// T02 teaches Mon period 2 on the regular schedule; T03 is free then.
	eligible := EligibleCandidates(period, []string{"T02", "T03"}, map[string]bool{"T01": true}, tracker, 4)

	assert.Equal(t, []string{"T03"}, eligible)
}

func TestEligibleCandidatesExcludesCommittedDuty(t *testing.T) {
	tracker := newLoadTracker("Mon", testSchedule())
	tracker.Commit("T03", "Mon", 3)

	period := models.AbsencePeriod{TeacherID: "T01", Date: "2026-01-12", Day: "Mon", Period: 3, ClassID: "P2", SubjectID: "MATH"}
	eligible := EligibleCandidates(period, []string{"T02", "T03"}, map[string]bool{"T01": true}, tracker, 4)

	assert.Equal(t, []string{"T02"}, eligible)
}

func TestEligibleCandidatesEnforcesDailyCap(t *testing.T) {
	tracker := newLoadTracker("Mon", testSchedule())

	// T04 already has 4 regular periods on Monday.
	period := models.AbsencePeriod{TeacherID: "T01", Date: "2026-01-12", Day: "Mon", Period: 5, ClassID: "P2", SubjectID: "MATH"}
	eligible := EligibleCandidates(period, []string{"T02", "T04"}, map[string]bool{"T01": true}, tracker, 4)

	assert.NotContains(t, eligible, "T04")
	assert.Contains(t, eligible, "T02")

	// A higher cap lets T04 back in.
	eligible = EligibleCandidates(period, []string{"T02", "T04"}, map[string]bool{"T01": true}, tracker, 5)
	assert.Contains(t, eligible, "T04")
}

func TestEligibleCandidatesMayBeEmpty(t *testing.T) {
	tracker := newLoadTracker("Mon", testSchedule())
	period := models.AbsencePeriod{TeacherID: "T01", Date: "2026-01-12", Day: "Mon", Period: 1, ClassID: "P2", SubjectID: "MATH"}

	eligible := EligibleCandidates(period, []string{"T01"}, map[string]bool{"T01": true}, tracker, 4)
	assert.Empty(t, eligible)
}

func TestLoadTrackerCountsCommittedDuties(t *testing.T) {
	tracker := newLoadTracker("Mon", testSchedule())

	assert.Equal(t, 1, tracker.Load("T01"))
	assert.Equal(t, 4, tracker.Load("T04"))

	tracker.Commit("T01", "Mon", 5)
	assert.Equal(t, 2, tracker.Load("T01"))
	assert.True(t, tracker.Occupied("T01", "Mon", 5))
}
