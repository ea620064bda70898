package database

import (
	"database/sql"

	"github.com/lib/pq"

	"banrai-schools/app/models"
)

// GetLeaveRequestsForDate returns the absence intake rows for one date.
// Teacher ids arrive canonical from the upstream intake process.
func GetLeaveRequestsForDate(db *sql.DB, date string) ([]models.LeaveRequest, error) {
	query := `SELECT teacher_id, to_char(date, 'YYYY-MM-DD'), periods, reason
			  FROM leave_requests WHERE date = $1 ORDER BY teacher_id`

	rows, err := db.Query(query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []models.LeaveRequest
	for rows.Next() {
		var l models.LeaveRequest
		var periods pq.Int64Array
		if err := rows.Scan(&l.TeacherID, &l.Date, &periods, &l.Reason); err != nil {
			return nil, err
		}
		l.Periods = make([]int, len(periods))
		for i, p := range periods {
			l.Periods[i] = int(p)
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}
