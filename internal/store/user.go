package store

import (
	"database/sql"
	"fmt"

	"hearth/internal/model"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := scanner.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Avatar, &u.Age, &u.ActiveFamilyID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const userCols = `id, username, display_name, avatar, age, active_family_id, created_at, updated_at`

func (s *UserStore) Create(username, displayName, avatar string, age int, passwordHash string) (*model.User, error) {
	result, err := s.db.Exec(
		`INSERT INTO users (username, display_name, avatar, age, password_hash) VALUES (?, ?, ?, ?, ?)`,
		username, displayName, avatar, age, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByUsername(username string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// PasswordHash returns the stored bcrypt hash for the given username.
func (s *UserStore) PasswordHash(username string) (string, error) {
	var hash string
	err := s.db.QueryRow(`SELECT password_hash FROM users WHERE username = ?`, username).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get password hash: %w", err)
	}
	return hash, nil
}

// SetActiveFamily moves the user's active-family pointer. A nil familyID
// clears it.
func (s *UserStore) SetActiveFamily(userID int64, familyID *string) error {
	_, err := s.db.Exec(
		`UPDATE users SET active_family_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		familyID, userID,
	)
	if err != nil {
		return fmt.Errorf("set active family: %w", err)
	}
	return nil
}
