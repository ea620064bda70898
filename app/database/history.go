package database

import (
	"database/sql"
	"fmt"

	"banrai-schools/app/models"
)

// LoadSubstitutionHistory reads the full append-only history in one batch at
// run start. The history is not date-bounded by default; the fairness window
// is applied downstream.
func LoadSubstitutionHistory(db *sql.DB) ([]models.AssignmentRecord, error) {
	query := `SELECT id, to_char(date, 'YYYY-MM-DD'), absent_teacher_id, day, period,
					 class_id, subject_id, substitute_id
			  FROM substitution_history ORDER BY date, day, period`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AssignmentRecord
	for rows.Next() {
		r := models.AssignmentRecord{Status: models.AssignmentFinalized}
		if err := rows.Scan(&r.ID, &r.Date, &r.AbsentTeacherID, &r.Day, &r.Period,
			&r.ClassID, &r.SubjectID, &r.SubstituteID); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// appendHistoryTx batch-appends finalized records to the history log inside
// an existing transaction. The table is append-only: corrections happen
// upstream of finalization, never by rewriting history rows.
func appendHistoryTx(tx *sql.Tx, records []models.AssignmentRecord) error {
	query := `INSERT INTO substitution_history
			  (id, date, absent_teacher_id, day, period, class_id, subject_id, substitute_id, finalized_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`

	for _, r := range records {
		if _, err := tx.Exec(query, r.ID, r.Date, r.AbsentTeacherID, r.Day, r.Period,
			r.ClassID, r.SubjectID, r.SubstituteID); err != nil {
			return fmt.Errorf("append history for %s/%s period %d: %w", r.Date, r.AbsentTeacherID, r.Period, err)
		}
	}
	return nil
}
