package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"banrai-schools/app/models"
)

// NoSubstituteMarker is the literal used in reports for a coverage gap. The
// parser treats an assignment line carrying it as "substitute cleared".
const NoSubstituteMarker = "no substitute found"

// GenerateReport renders the staged assignments for one date into the
// two-part operator report: a data block the message parser can read back,
// and an instructions block telling the operator how to edit it.
func GenerateReport(date string, records []models.AssignmentRecord, ref *models.ReferenceData) string {
	var b strings.Builder

	b.WriteString("Substitute Assignment Report\n")
	b.WriteString(fmt.Sprintf("Date: %s\n", formatReportDate(date)))
	b.WriteString(strings.Repeat("=", 30) + "\n")

	if len(records) == 0 {
		b.WriteString("\nNo absences recorded for this date.\n")
		return b.String()
	}

	absentees := make(map[string]bool)
	covered := 0
	for i := range records {
		absentees[records[i].AbsentTeacherID] = true
		if records[i].HasSubstitute() {
			covered++
		}
	}
	rate := float64(covered) / float64(len(records)) * 100

	b.WriteString("\nSummary:\n")
	b.WriteString(fmt.Sprintf("  Absent teachers: %d\n", len(absentees)))
	b.WriteString(fmt.Sprintf("  Periods needing cover: %d\n", len(records)))
	b.WriteString(fmt.Sprintf("  Covered: %d (%.1f%%)\n", covered, rate))

	b.WriteString("\nAssignments:\n")
	byDay := make(map[string][]models.AssignmentRecord)
	for _, r := range records {
		byDay[r.Day] = append(byDay[r.Day], r)
	}
	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return models.DayIndex(days[i]) < models.DayIndex(days[j])
	})

	for _, day := range days {
		b.WriteString(models.DayNames[day] + ":\n")
		dayRecords := byDay[day]
		sort.Slice(dayRecords, func(i, j int) bool {
			if dayRecords[i].Period != dayRecords[j].Period {
				return dayRecords[i].Period < dayRecords[j].Period
			}
			return dayRecords[i].ClassID < dayRecords[j].ClassID
		})

		lastPeriod := -1
		for _, r := range dayRecords {
			if r.Period != lastPeriod {
				b.WriteString(fmt.Sprintf("  Period %d:\n", r.Period))
				lastPeriod = r.Period
			}
			subject := ref.SubjectName(r.SubjectID)
			absentName := ref.DisplayName(r.AbsentTeacherID)
			if r.HasSubstitute() {
				subName := ref.DisplayName(r.Substitute())
				b.WriteString(fmt.Sprintf("    - %s (%s): %s (absent) => %s (substitute)\n",
					subject, r.ClassID, absentName, subName))
			} else {
				b.WriteString(fmt.Sprintf("    - %s (%s): %s (absent) => %s\n",
					subject, r.ClassID, absentName, NoSubstituteMarker))
			}
		}
	}

	b.WriteString("\n" + strings.Repeat("-", 30) + "\n")
	b.WriteString("Instructions:\n")
	b.WriteString("  To correct an assignment, edit the substitute name after \"=>\"\n")
	b.WriteString("  and send this message back. Keep the day and period lines\n")
	b.WriteString("  unchanged. Write \"" + NoSubstituteMarker + "\" to clear a substitute.\n")

	return b.String()
}

func formatReportDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("2006-01-02")
}
