package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"hearth/internal/model"
)

type AppConfigStore struct {
	db *sql.DB
}

func NewAppConfigStore(db *sql.DB) *AppConfigStore {
	return &AppConfigStore{db: db}
}

func scanApplication(scanner interface{ Scan(...any) error }) (*model.Application, error) {
	var app model.Application
	var cfgJSON string
	err := scanner.Scan(&app.ID, &app.Name, &app.Description, &cfgJSON, &app.Status, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(cfgJSON), &app.DefaultConfig); err != nil {
		return nil, fmt.Errorf("decode default config: %w", err)
	}
	return &app, nil
}

func scanAppConfig(scanner interface{ Scan(...any) error }) (*model.AppConfig, error) {
	var cfg model.AppConfig
	var dataJSON string
	err := scanner.Scan(&cfg.ID, &cfg.UserID, &cfg.AppID, &cfg.Environment, &dataJSON, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(dataJSON), &cfg.ConfigData); err != nil {
		return nil, fmt.Errorf("decode config data: %w", err)
	}
	return &cfg, nil
}

const applicationCols = `id, name, description, default_config, status, created_at, updated_at`
const appConfigCols = `id, user_id, app_id, environment, config_data, created_at, updated_at`

func (s *AppConfigStore) CreateApplication(app *model.Application) (*model.Application, error) {
	cfgJSON, err := json.Marshal(app.DefaultConfig)
	if err != nil {
		return nil, fmt.Errorf("encode default config: %w", err)
	}
	status := app.Status
	if status == "" {
		status = "active"
	}
	if _, err := s.db.Exec(
		`INSERT INTO applications (id, name, description, default_config, status) VALUES (?, ?, ?, ?, ?)`,
		app.ID, app.Name, app.Description, string(cfgJSON), status,
	); err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}
	return s.GetApplication(app.ID)
}

func (s *AppConfigStore) GetApplication(id string) (*model.Application, error) {
	row := s.db.QueryRow(`SELECT `+applicationCols+` FROM applications WHERE id = ?`, id)
	app, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	return app, nil
}

func (s *AppConfigStore) ListApplications() ([]model.Application, error) {
	rows, err := s.db.Query(`SELECT ` + applicationCols + ` FROM applications ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func (s *AppConfigStore) CreateConfig(cfg *model.AppConfig) (*model.AppConfig, error) {
	dataJSON, err := json.Marshal(cfg.ConfigData)
	if err != nil {
		return nil, fmt.Errorf("encode config data: %w", err)
	}
	if _, err := s.db.Exec(
		`INSERT INTO app_configs (id, user_id, app_id, environment, config_data) VALUES (?, ?, ?, ?, ?)`,
		cfg.ID, cfg.UserID, cfg.AppID, cfg.Environment, string(dataJSON),
	); err != nil {
		return nil, fmt.Errorf("insert app config: %w", err)
	}
	return s.GetConfig(cfg.ID)
}

func (s *AppConfigStore) GetConfig(id string) (*model.AppConfig, error) {
	row := s.db.QueryRow(`SELECT `+appConfigCols+` FROM app_configs WHERE id = ?`, id)
	cfg, err := scanAppConfig(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get app config: %w", err)
	}
	return cfg, nil
}

func (s *AppConfigStore) UpdateConfigData(id string, data model.ConfigData) (*model.AppConfig, error) {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode config data: %w", err)
	}
	if _, err := s.db.Exec(
		`UPDATE app_configs SET config_data = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(dataJSON), id,
	); err != nil {
		return nil, fmt.Errorf("update app config: %w", err)
	}
	return s.GetConfig(id)
}

func (s *AppConfigStore) ListConfigsForUser(userID int64) ([]model.AppConfig, error) {
	rows, err := s.db.Query(
		`SELECT `+appConfigCols+` FROM app_configs WHERE user_id = ? ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list app configs: %w", err)
	}
	defer rows.Close()

	var cfgs []model.AppConfig
	for rows.Next() {
		cfg, err := scanAppConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("scan app config: %w", err)
		}
		cfgs = append(cfgs, *cfg)
	}
	return cfgs, rows.Err()
}

// UserApplications assembles the per-user view: every application with the
// user's configs attached, plus system settings.
func (s *AppConfigStore) UserApplications(userID int64) (*model.UserApplicationsResponse, error) {
	apps, err := s.ListApplications()
	if err != nil {
		return nil, err
	}
	cfgs, err := s.ListConfigsForUser(userID)
	if err != nil {
		return nil, err
	}
	byApp := make(map[string][]model.AppConfig)
	for _, cfg := range cfgs {
		byApp[cfg.AppID] = append(byApp[cfg.AppID], cfg)
	}

	resp := &model.UserApplicationsResponse{
		SystemSettings: map[string]string{},
		Applications:   make([]model.UserApplicationEntry, 0, len(apps)),
	}
	for _, app := range apps {
		resp.Applications = append(resp.Applications, model.UserApplicationEntry{
			Application: app,
			AppConfigs:  byApp[app.ID],
		})
	}

	rows, err := s.db.Query(`SELECT key, value FROM system_settings`)
	if err != nil {
		return nil, fmt.Errorf("list system settings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan system setting: %w", err)
		}
		resp.SystemSettings[k] = v
	}
	return resp, rows.Err()
}

func (s *AppConfigStore) SetSystemSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO system_settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set system setting: %w", err)
	}
	return nil
}
