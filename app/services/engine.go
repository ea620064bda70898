package services

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"banrai-schools/app/models"
)

// Engine runs the sequential-greedy assignment strategy: absence periods are
// grouped by date and processed strictly in order, each committed choice
// updating the load tracker consulted by the next period. Once a period is
// committed it is never revisited, even if a later period's choice would have
// been globally better.
type Engine struct {
	dailyCap int
	scorer   *Scorer
}

// NewEngine creates an Engine with the given daily period cap.
func NewEngine(dailyCap int, scorer *Scorer) *Engine {
	return &Engine{dailyCap: dailyCap, scorer: scorer}
}

// BuildAbsencePeriods derives coverage needs from raw leave requests. Only
// periods where the teacher actually has a scheduled class that weekday
// produce an AbsencePeriod; an empty requested period list means the whole
// teaching day. Requests falling on non-teaching days yield nothing.
func BuildAbsencePeriods(leaves []models.LeaveRequest, schedule []models.ScheduleEntry) []models.AbsencePeriod {
	var periods []models.AbsencePeriod
	for _, leave := range leaves {
		day, err := weekdayOf(leave.Date)
		if err != nil || models.DayIndex(day) < 0 {
			continue
		}
		requested := make(map[int]bool, len(leave.Periods))
		for _, p := range leave.Periods {
			requested[p] = true
		}
		for _, e := range schedule {
			if e.TeacherID != leave.TeacherID || e.Day != day {
				continue
			}
			if len(requested) > 0 && !requested[e.Period] {
				continue
			}
			periods = append(periods, models.AbsencePeriod{
				TeacherID: leave.TeacherID,
				Date:      leave.Date,
				Day:       day,
				Period:    e.Period,
				ClassID:   e.ClassID,
				SubjectID: e.SubjectID,
				Reason:    leave.Reason,
			})
		}
	}
	return periods
}

// AbsentTeachersByDate collects the full absent set per date from the raw
// leave requests. A teacher on leave is excluded as a candidate even when the
// leave produced no coverage needs of its own.
func AbsentTeachersByDate(leaves []models.LeaveRequest) map[string]map[string]bool {
	byDate := make(map[string]map[string]bool)
	for _, leave := range leaves {
		if byDate[leave.Date] == nil {
			byDate[leave.Date] = make(map[string]bool)
		}
		byDate[leave.Date][leave.TeacherID] = true
	}
	return byDate
}

// AssignSubstitutes processes all absence periods and emits one pending
// assignment record per period, with the substitute id or an explicit none.
// absentByDate may be nil, in which case the absent sets are derived from the
// periods themselves.
func (e *Engine) AssignSubstitutes(
	periods []models.AbsencePeriod,
	absentByDate map[string]map[string]bool,
	ref *models.ReferenceData,
	fairness *FairnessSnapshot,
) []models.AssignmentRecord {
	byDate := make(map[string][]models.AbsencePeriod)
	for _, p := range periods {
		byDate[p.Date] = append(byDate[p.Date], p)
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	pool := ref.TeacherIDs()
	sort.Strings(pool)

	var records []models.AssignmentRecord
	for _, date := range dates {
		records = append(records, e.assignDate(byDate[date], absentByDate[date], pool, ref, fairness)...)
	}
	return records
}

// assignDate handles one date sequentially. The tracker is scoped to this
// date and carries each committed duty into the filter and scorer for the
// periods that follow.
func (e *Engine) assignDate(
	periods []models.AbsencePeriod,
	absent map[string]bool,
	pool []string,
	ref *models.ReferenceData,
	fairness *FairnessSnapshot,
) []models.AssignmentRecord {
	sort.Slice(periods, func(i, j int) bool {
		if periods[i].Period != periods[j].Period {
			return periods[i].Period < periods[j].Period
		}
		if periods[i].TeacherID != periods[j].TeacherID {
			return periods[i].TeacherID < periods[j].TeacherID
		}
		return periods[i].ClassID < periods[j].ClassID
	})

	if absent == nil {
		absent = make(map[string]bool)
	}
	for _, p := range periods {
		absent[p.TeacherID] = true
	}

	day := periods[0].Day
	tracker := newLoadTracker(day, ref.Schedule)

	records := make([]models.AssignmentRecord, 0, len(periods))
	for _, p := range periods {
		eligible := EligibleCandidates(p, pool, absent, tracker, e.dailyCap)

		scored := make([]scoredCandidate, 0, len(eligible))
		for _, id := range eligible {
			t := ref.Teachers[id]
			scored = append(scored, scoredCandidate{
				teacherID: id,
				score:     e.scorer.Score(t, p, tracker.Load(id), fairness),
			})
		}

		record := models.AssignmentRecord{
			ID:              uuid.New().String(),
			Date:            p.Date,
			AbsentTeacherID: p.TeacherID,
			Day:             p.Day,
			Period:          p.Period,
			ClassID:         p.ClassID,
			SubjectID:       p.SubjectID,
			Status:          models.AssignmentPending,
			Reason:          p.Reason,
		}

		if chosen := e.scorer.SelectBest(scored); chosen != "" {
			sub := chosen
			record.SubstituteID = &sub
			tracker.Commit(chosen, p.Day, p.Period)
		}
		records = append(records, record)
	}
	return records
}

func weekdayOf(date string) (string, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", err
	}
	return d.Format("Mon"), nil
}
