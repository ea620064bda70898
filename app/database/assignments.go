package database

import (
	"database/sql"
	"fmt"

	"banrai-schools/app/models"
)

// InsertPendingAssignments stages freshly generated assignment records in one
// transaction. Composite keys already present are left untouched, which makes
// re-running the engine on an already-processed date a reported no-op instead
// of a duplicate. Returns the number of rows actually inserted.
func InsertPendingAssignments(db *sql.DB, records []models.AssignmentRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin staging transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO assignment_records
			  (id, date, absent_teacher_id, day, period, class_id, subject_id, substitute_id, status, reason, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
			  ON CONFLICT (date, absent_teacher_id, day, period) DO NOTHING`

	inserted := 0
	for _, r := range records {
		res, err := tx.Exec(query, r.ID, r.Date, r.AbsentTeacherID, r.Day, r.Period,
			r.ClassID, r.SubjectID, r.SubstituteID, r.Status, r.Reason)
		if err != nil {
			return 0, fmt.Errorf("stage assignment %s/%s period %d: %w", r.Date, r.AbsentTeacherID, r.Period, err)
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit staging transaction: %w", err)
	}
	return inserted, nil
}

// GetAssignmentsByDate returns the assignment records for one date,
// optionally filtered by status ("" = all).
func GetAssignmentsByDate(db *sql.DB, date string, status models.AssignmentStatus) ([]models.AssignmentRecord, error) {
	query := `SELECT id, to_char(date, 'YYYY-MM-DD'), absent_teacher_id, day, period,
					 class_id, subject_id, substitute_id, status, reason, created_at, updated_at
			  FROM assignment_records WHERE date = $1`
	args := []interface{}{date}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY day, period, absent_teacher_id`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignmentRows(rows)
}

// UpdatePendingSubstitute rewrites the substitute on a still-pending record
// identified by its composite key. A key that exists only in finalized form
// yields ErrPersistenceConflict; a missing key yields ErrNotFound.
func UpdatePendingSubstitute(db *sql.DB, key models.AssignmentKey, substituteID *string) error {
	query := `UPDATE assignment_records SET substitute_id = $1, updated_at = NOW()
			  WHERE date = $2 AND absent_teacher_id = $3 AND day = $4 AND period = $5
			  AND status = 'pending'`

	res, err := db.Exec(query, substituteID, key.Date, key.AbsentTeacherID, key.Day, key.Period)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	var status string
	check := `SELECT status FROM assignment_records
			  WHERE date = $1 AND absent_teacher_id = $2 AND day = $3 AND period = $4`
	err = db.QueryRow(check, key.Date, key.AbsentTeacherID, key.Day, key.Period).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if status == string(models.AssignmentFinalized) {
		return ErrPersistenceConflict
	}
	return ErrNotFound
}

// FinalizeAssignments flips the given pending records to finalized and
// appends them to the substitution history in one transaction. Keys already
// finalized are returned as conflicts and never overwritten; re-running
// finalize on an already-finalized date therefore produces no duplicates.
func FinalizeAssignments(db *sql.DB, keys []models.AssignmentKey) (finalized []models.AssignmentRecord, conflicts []models.AssignmentKey, err error) {
	if len(keys) == 0 {
		return nil, nil, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, nil, fmt.Errorf("begin finalize transaction: %w", err)
	}
	defer tx.Rollback()

	update := `UPDATE assignment_records SET status = 'finalized', updated_at = NOW()
			   WHERE date = $1 AND absent_teacher_id = $2 AND day = $3 AND period = $4
			   AND status = 'pending'
			   RETURNING id, to_char(date, 'YYYY-MM-DD'), absent_teacher_id, day, period,
						 class_id, subject_id, substitute_id, status, reason, created_at, updated_at`

	for _, key := range keys {
		var r models.AssignmentRecord
		err := tx.QueryRow(update, key.Date, key.AbsentTeacherID, key.Day, key.Period).Scan(
			&r.ID, &r.Date, &r.AbsentTeacherID, &r.Day, &r.Period,
			&r.ClassID, &r.SubjectID, &r.SubstituteID, &r.Status, &r.Reason,
			&r.CreatedAt, &r.UpdatedAt)
		if err == sql.ErrNoRows {
			conflicts = append(conflicts, key)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("finalize %s/%s period %d: %w", key.Date, key.AbsentTeacherID, key.Period, err)
		}
		finalized = append(finalized, r)
	}

	if err := appendHistoryTx(tx, finalized); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit finalize transaction: %w", err)
	}
	return finalized, conflicts, nil
}

// ExpireOldPending marks pending assignments older than the expiry window as
// expired. Expired records are kept for the audit trail.
func ExpireOldPending(db *sql.DB, days int) (int, error) {
	query := `UPDATE assignment_records SET status = 'expired', updated_at = NOW()
			  WHERE status = 'pending' AND date < NOW() - ($1 * INTERVAL '1 day')`

	res, err := db.Exec(query, days)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func scanAssignmentRows(rows *sql.Rows) ([]models.AssignmentRecord, error) {
	var records []models.AssignmentRecord
	for rows.Next() {
		var r models.AssignmentRecord
		if err := rows.Scan(&r.ID, &r.Date, &r.AbsentTeacherID, &r.Day, &r.Period,
			&r.ClassID, &r.SubjectID, &r.SubstituteID, &r.Status, &r.Reason,
			&r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
