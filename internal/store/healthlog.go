package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"hearth/internal/model"
)

type HealthLogStore struct {
	db *sql.DB
}

func NewHealthLogStore(db *sql.DB) *HealthLogStore {
	return &HealthLogStore{db: db}
}

func scanHealthLog(scanner interface{ Scan(...any) error }) (*model.HealthLog, error) {
	var hl model.HealthLog
	var mood sql.NullString
	var envJSON sql.NullString
	err := scanner.Scan(&hl.ID, &hl.FamilyID, &hl.Author, &hl.Timestamp, &hl.Content, &mood, &envJSON)
	if err != nil {
		return nil, err
	}
	if mood.Valid {
		hl.Mood = model.Mood(mood.String)
	}
	if envJSON.Valid && envJSON.String != "" {
		var env model.EnvironmentalContext
		if err := json.Unmarshal([]byte(envJSON.String), &env); err != nil {
			return nil, fmt.Errorf("decode environment: %w", err)
		}
		hl.Environment = &env
	}
	return &hl, nil
}

const healthLogCols = `id, family_id, author, timestamp, content, mood, environment`

func (s *HealthLogStore) Create(hl *model.HealthLog) (*model.HealthLog, error) {
	var mood any
	if hl.Mood != "" {
		mood = string(hl.Mood)
	}
	var envJSON any
	if hl.Environment != nil {
		data, err := json.Marshal(hl.Environment)
		if err != nil {
			return nil, fmt.Errorf("encode environment: %w", err)
		}
		envJSON = string(data)
	}
	result, err := s.db.Exec(
		`INSERT INTO health_logs (family_id, author, timestamp, content, mood, environment) VALUES (?, ?, ?, ?, ?, ?)`,
		hl.FamilyID, hl.Author, hl.Timestamp.UTC(), hl.Content, mood, envJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("insert health log: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *HealthLogStore) GetByID(id int64) (*model.HealthLog, error) {
	row := s.db.QueryRow(`SELECT `+healthLogCols+` FROM health_logs WHERE id = ?`, id)
	hl, err := scanHealthLog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get health log: %w", err)
	}
	return hl, nil
}

func (s *HealthLogStore) ListByFamily(familyID string) ([]model.HealthLog, error) {
	rows, err := s.db.Query(
		`SELECT `+healthLogCols+` FROM health_logs WHERE family_id = ? ORDER BY timestamp DESC, id DESC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list health logs: %w", err)
	}
	defer rows.Close()

	var logs []model.HealthLog
	for rows.Next() {
		hl, err := scanHealthLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan health log: %w", err)
		}
		logs = append(logs, *hl)
	}
	return logs, rows.Err()
}
