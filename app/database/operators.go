package database

import (
	"database/sql"
	"time"
)

// Operator is a staff account allowed to trigger runs and reconciliation.
type Operator struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	DisplayName string    `json:"display_name"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateOperator inserts a new operator account. The password must already
// be hashed by the caller.
func CreateOperator(db *sql.DB, email, hashedPassword, displayName string) error {
	query := `INSERT INTO operators (email, password, display_name, is_active, created_at)
			  VALUES ($1, $2, $3, true, NOW())`
	_, err := db.Exec(query, email, hashedPassword, displayName)
	return err
}

// GetOperatorByEmail fetches an active operator account for login.
func GetOperatorByEmail(db *sql.DB, email string) (*Operator, error) {
	op := &Operator{}
	query := `SELECT id, email, password, display_name, is_active, created_at
			  FROM operators WHERE email = $1 AND is_active = true`

	err := db.QueryRow(query, email).Scan(
		&op.ID, &op.Email, &op.Password, &op.DisplayName, &op.IsActive, &op.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return op, nil
}
