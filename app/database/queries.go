package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Kevin-innovation/dlab-dashboard/app/models"
)

// GetUserByEmail looks a teacher up by login email.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	var user models.User
	err := db.QueryRow(`
		SELECT id, email, password, name, created_at, updated_at
		FROM users
		WHERE email = $1`, email,
	).Scan(&user.ID, &user.Email, &user.Password, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID fetches a teacher account.
func GetUserByID(db *sql.DB, id string) (*models.User, error) {
	var user models.User
	err := db.QueryRow(`
		SELECT id, email, password, name, created_at, updated_at
		FROM users
		WHERE id = $1`, id,
	).Scan(&user.ID, &user.Email, &user.Password, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a teacher account with an already-hashed password.
func CreateUser(db *sql.DB, email, hashedPassword, name string) (*models.User, error) {
	var user models.User
	err := db.QueryRow(`
		INSERT INTO users (email, password, name)
		VALUES ($1, $2, $3)
		RETURNING id, email, password, name, created_at, updated_at`,
		email, hashedPassword, name,
	).Scan(&user.ID, &user.Email, &user.Password, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserPassword replaces a teacher's password hash.
func UpdateUserPassword(db *sql.DB, userID, hashedPassword string) error {
	_, err := db.Exec(`
		UPDATE users SET password = $1, updated_at = NOW()
		WHERE id = $2`, hashedPassword, userID)
	return err
}

// CreateSession records a login. The session ID doubles as the JWT ID so a
// token can be revoked server side.
func CreateSession(db *sql.DB, userID string, expiresAt time.Time) (string, error) {
	sessionID := uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES ($1, $2, $3)`, sessionID, userID, expiresAt)
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// GetSessionByID fetches a login's server-side record. Expired rows are
// treated as missing.
func GetSessionByID(db *sql.DB, sessionID string) (*models.Session, error) {
	var s models.Session
	err := db.QueryRow(`
		SELECT id, user_id, expires_at, created_at
		FROM sessions
		WHERE id = $1 AND expires_at > NOW()`, sessionID,
	).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession removes one session on logout.
func DeleteSession(db *sql.DB, sessionID string) error {
	_, err := db.Exec(`DELETE FROM sessions WHERE id = $1`, sessionID)
	return err
}

// DeleteExpiredSessions sweeps stale sessions and reports how many were removed.
func DeleteExpiredSessions(db *sql.DB) (int64, error) {
	res, err := db.Exec(`DELETE FROM sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
