package services

import (
	"context"
	"fmt"
	"strings"

	"banrai-schools/app/models"
)

// GateThresholds are the confidence bands applied to changed assignments.
// At or above AutoApply the change is applied; in [Suggest, AutoApply) it is
// surfaced for human confirmation; below Suggest it is rejected. Boundaries
// are inclusive at the lower edge of each band.
type GateThresholds struct {
	AutoApply float64 `yaml:"auto_apply"`
	Suggest   float64 `yaml:"suggest"`
}

// DefaultGateThresholds returns the production confidence bands.
func DefaultGateThresholds() GateThresholds {
	return GateThresholds{AutoApply: 0.85, Suggest: 0.60}
}

// AppliedChange is a changed assignment that cleared the auto-apply band.
// NewSubstitute is "" when the operator cleared the assignment.
type AppliedChange struct {
	Key            models.AssignmentKey `json:"key"`
	ClassID        string               `json:"class_id"`
	SubjectText    string               `json:"subject"`
	OldSubstitute  string               `json:"old_substitute"`
	NewSubstitute  string               `json:"new_substitute"`
	Confidence     float64              `json:"confidence"`
	Tier           models.MatchTier     `json:"tier"`
	SubstituteName string               `json:"substitute_name"`
}

// Suggestion is a changed assignment whose match confidence fell into the
// review band. Persisted state is not mutated for suggestions.
type Suggestion struct {
	Key           models.AssignmentKey `json:"key"`
	RawName       string               `json:"raw_name"`
	SuggestedID   string               `json:"suggested_id"`
	Confidence    float64              `json:"confidence"`
	OldSubstitute string               `json:"old_substitute"`
}

// RejectedChange is an edit whose substitute could not be matched with enough
// confidence; the substitute is reported as not found and nothing is mutated.
type RejectedChange struct {
	Key        models.AssignmentKey `json:"key"`
	RawName    string               `json:"raw_name"`
	Confidence float64              `json:"confidence"`
}

// MatchError records an absent-teacher name that resolved to nothing, which
// makes the composite key unrecoverable for that line.
type MatchError struct {
	RawName string `json:"raw_name"`
	Context string `json:"context"`
}

// ChangeSet is the full outcome of reconciling an edited report against the
// pending records for one date. It is both the mutation plan and the source
// of the operator confirmation summary.
type ChangeSet struct {
	Date          string
	Applied       []AppliedChange
	Suggestions   []Suggestion
	Rejected      []RejectedChange
	Unchanged     []models.AssignmentKey
	Unmatched     []ParsedAssignment
	MatchErrors   []MatchError
	ParseWarnings []ParseWarning
	Notes         []string
}

// DetectChanges diffs parsed assignments against the pending records for the
// target date. Matching uses the composite key, never row position; class and
// subject text are only a sanity check and a mismatch is noted, not blocking.
func DetectChanges(
	ctx context.Context,
	date string,
	parsed []ParsedAssignment,
	warnings []ParseWarning,
	pending []models.AssignmentRecord,
	resolver *Resolver,
	gate GateThresholds,
	ref *models.ReferenceData,
) *ChangeSet {
	cs := &ChangeSet{Date: date, ParseWarnings: warnings}

	byKey := make(map[models.AssignmentKey]*models.AssignmentRecord, len(pending))
	for i := range pending {
		byKey[pending[i].Key()] = &pending[i]
	}

	for _, p := range parsed {
		lineContext := fmt.Sprintf("%s (%s) - %s period %d", p.SubjectText, p.ClassID, p.Day, p.Period)

		absentMatch := resolver.Resolve(ctx, p.AbsentName)
		if !absentMatch.Resolved() {
			cs.MatchErrors = append(cs.MatchErrors, MatchError{RawName: p.AbsentName, Context: lineContext})
			continue
		}

		key := models.AssignmentKey{
			Date:            date,
			AbsentTeacherID: absentMatch.TeacherID,
			Day:             p.Day,
			Period:          p.Period,
		}
		record, ok := byKey[key]
		if !ok {
			cs.Unmatched = append(cs.Unmatched, p)
			continue
		}

		if record.ClassID != p.ClassID || ref.SubjectName(record.SubjectID) != p.SubjectText {
			cs.Notes = append(cs.Notes, fmt.Sprintf(
				"class/subject text differs from record for %s period %d (got %q %q), matched on key anyway",
				p.Day, p.Period, p.ClassID, p.SubjectText))
		}

		oldSub := record.Substitute()

		// A cleared substitute is an explicit operator instruction, not a
		// name to resolve.
		if p.SubstituteName == "" {
			if oldSub == "" {
				cs.Unchanged = append(cs.Unchanged, key)
			} else {
				cs.Applied = append(cs.Applied, AppliedChange{
					Key:           key,
					ClassID:       p.ClassID,
					SubjectText:   p.SubjectText,
					OldSubstitute: oldSub,
					NewSubstitute: "",
					Confidence:    1.0,
					Tier:          models.TierExact,
				})
			}
			continue
		}

		subMatch := resolver.Resolve(ctx, p.SubstituteName)
		if subMatch.Resolved() && subMatch.TeacherID == oldSub {
			cs.Unchanged = append(cs.Unchanged, key)
			continue
		}

		// Changed: gate on the substitute-match confidence.
		switch {
		case subMatch.Resolved() && subMatch.Confidence >= gate.AutoApply:
			cs.Applied = append(cs.Applied, AppliedChange{
				Key:            key,
				ClassID:        p.ClassID,
				SubjectText:    p.SubjectText,
				OldSubstitute:  oldSub,
				NewSubstitute:  subMatch.TeacherID,
				Confidence:     subMatch.Confidence,
				Tier:           subMatch.Tier,
				SubstituteName: p.SubstituteName,
			})
		case subMatch.Resolved() && subMatch.Confidence >= gate.Suggest:
			cs.Suggestions = append(cs.Suggestions, Suggestion{
				Key:           key,
				RawName:       p.SubstituteName,
				SuggestedID:   subMatch.TeacherID,
				Confidence:    subMatch.Confidence,
				OldSubstitute: oldSub,
			})
		default:
			cs.Rejected = append(cs.Rejected, RejectedChange{
				Key:        key,
				RawName:    p.SubstituteName,
				Confidence: subMatch.Confidence,
			})
		}
	}

	return cs
}

// FinalizeKeys returns the composite keys that may move to finalized: the
// unchanged records plus the applied changes. Suggestions and rejections
// leave their records pending.
func (cs *ChangeSet) FinalizeKeys() []models.AssignmentKey {
	keys := make([]models.AssignmentKey, 0, len(cs.Unchanged)+len(cs.Applied))
	keys = append(keys, cs.Unchanged...)
	for _, a := range cs.Applied {
		keys = append(keys, a.Key)
	}
	return keys
}

// GenerateConfirmationSummary renders the artifact returned to the operator:
// applied changes, pending suggestions, rejections, and unmatched warnings.
func GenerateConfirmationSummary(cs *ChangeSet, ref *models.ReferenceData) string {
	var b strings.Builder

	b.WriteString("Reconciliation summary\n")
	b.WriteString(fmt.Sprintf("Date: %s\n", cs.Date))

	if len(cs.Applied) > 0 {
		b.WriteString(fmt.Sprintf("\nApplied changes (%d):\n", len(cs.Applied)))
		for _, a := range cs.Applied {
			oldName := substituteLabel(a.OldSubstitute, ref)
			newName := substituteLabel(a.NewSubstitute, ref)
			b.WriteString(fmt.Sprintf("  - %s (%s) %s period %d: %s -> %s\n",
				a.SubjectText, a.ClassID, a.Key.Day, a.Key.Period, oldName, newName))
		}
	}

	if len(cs.Unchanged) > 0 {
		b.WriteString(fmt.Sprintf("\nUnchanged: %d period(s)\n", len(cs.Unchanged)))
	}

	if len(cs.Suggestions) > 0 {
		b.WriteString("\nSuggested name corrections (please confirm):\n")
		for _, s := range cs.Suggestions {
			b.WriteString(fmt.Sprintf("  - %q looks like %q (confidence %d%%), %s period %d\n",
				s.RawName, ref.DisplayName(s.SuggestedID), int(s.Confidence*100), s.Key.Day, s.Key.Period))
		}
	}

	if len(cs.Rejected) > 0 {
		b.WriteString("\nRejected (substitute not found):\n")
		for _, r := range cs.Rejected {
			b.WriteString(fmt.Sprintf("  - %q, %s period %d\n", r.RawName, r.Key.Day, r.Key.Period))
		}
	}

	warnings := make([]string, 0, len(cs.MatchErrors)+len(cs.Unmatched)+len(cs.ParseWarnings))
	for _, e := range cs.MatchErrors {
		warnings = append(warnings, fmt.Sprintf("unknown teacher %q (%s)", e.RawName, e.Context))
	}
	for _, u := range cs.Unmatched {
		warnings = append(warnings, fmt.Sprintf("no pending record matches %s (%s) %s period %d",
			u.SubjectText, u.ClassID, u.Day, u.Period))
	}
	for _, w := range cs.ParseWarnings {
		warnings = append(warnings, fmt.Sprintf("line %d skipped: %s", w.Line, w.Reason))
	}
	if len(warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range warnings {
			b.WriteString("  - " + w + "\n")
		}
	}

	return b.String()
}

func substituteLabel(teacherID string, ref *models.ReferenceData) string {
	if teacherID == "" {
		return NoSubstituteMarker
	}
	return ref.DisplayName(teacherID)
}
