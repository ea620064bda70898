package models

// ConfidenceMatch is the outcome of resolving raw name text to a teacher id.
// An empty TeacherID means the text could not be resolved; the resolver never
// falls back to a best-guess id below the confidence floor.
type ConfidenceMatch struct {
	RawText    string    `json:"raw_text"`
	TeacherID  string    `json:"teacher_id"`
	Confidence float64   `json:"confidence"`
	Tier       MatchTier `json:"tier"`
}

// Resolved reports whether the raw text mapped to a known teacher.
func (m ConfidenceMatch) Resolved() bool {
	return m.TeacherID != ""
}
