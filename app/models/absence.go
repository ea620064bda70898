package models

// LeaveRequest is the absence intake shape produced upstream. Teacher ids are
// already canonical. An empty period list means the whole teaching day.
type LeaveRequest struct {
	TeacherID string `json:"teacher_id" db:"teacher_id"`
	Date      string `json:"date" db:"date"`
	Periods   []int  `json:"periods"`
	Reason    string `json:"reason" db:"reason"`
}

// AbsencePeriod is one unit of coverage need. Records exist only for periods
// where the absent teacher actually had a scheduled class that day.
type AbsencePeriod struct {
	TeacherID string `json:"teacher_id"`
	Date      string `json:"date"`
	Day       string `json:"day"`
	Period    int    `json:"period"`
	ClassID   string `json:"class_id"`
	SubjectID string `json:"subject_id"`
	Reason    string `json:"reason"`
}
