package services

import (
	"math/rand"
	"time"

	"banrai-schools/app/models"
)

// testRef builds a small school: five teachers, three subjects, and the
// Monday-heavy schedule from testSchedule. T05 is the last-resort floater.
func testRef() *models.ReferenceData {
	teachers := map[string]*models.Teacher{
		"T01": {ID: "T01", DisplayName: "Kru Somchai", Subjects: []string{"MATH"}, Level: models.LowerElementary, IsActive: true},
		"T02": {ID: "T02", DisplayName: "Kru Pimol", Subjects: []string{"MATH"}, Level: models.LowerElementary, IsActive: true},
		"T03": {ID: "T03", DisplayName: "Kru Duangjai", Subjects: []string{"ENG"}, Level: models.UpperElementary, IsActive: true},
		"T04": {ID: "T04", DisplayName: "Kru Wanida", Subjects: []string{"SCI"}, Level: models.Middle, IsActive: true},
		"T05": {ID: "T05", DisplayName: "Kru Sithisak", Subjects: []string{"MATH", "SCI", "ENG"}, Level: models.LowerElementary, IsActive: true, IsLastResort: true},
	}
	nameToID := make(map[string]string, len(teachers))
	for id, t := range teachers {
		nameToID[t.DisplayName] = id
	}
	return &models.ReferenceData{
		Teachers: teachers,
		Schedule: testSchedule(),
		NameToID: nameToID,
		SubjectNames: map[string]string{
			"MATH": "Mathematics",
			"SCI":  "Science",
			"ENG":  "English",
			"THAI": "Thai",
		},
	}
}

func testScorer(seed int64) *Scorer {
	return NewScorer(DefaultScoreWeights(), WindowAllTime, rand.New(rand.NewSource(seed)))
}

func emptyFairness() *FairnessSnapshot {
	return BuildFairnessSnapshot(nil, nil)
}

func testTerm(start, end string) *models.Term {
	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	return &models.Term{
		ID:        "TERM1",
		Name:      "Term 1",
		StartDate: models.CustomDate{Time: s},
		EndDate:   models.CustomDate{Time: e},
		IsCurrent: true,
	}
}

func strptr(s string) *string { return &s }
