package model

import "time"

// ConfigData is a JSON-like tree of configuration values.
type ConfigData map[string]any

type Application struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	DefaultConfig ConfigData `json:"default_config"`
	Status        string     `json:"status,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type AppConfig struct {
	ID          string     `json:"id"`
	UserID      int64      `json:"user_id"`
	AppID       string     `json:"app_id"`
	Environment string     `json:"environment"`
	ConfigData  ConfigData `json:"config_data"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// EffectiveConfig is computed at serve time, the application's
	// defaults with ConfigData merged on top. Never stored.
	EffectiveConfig ConfigData `json:"effective_config,omitempty"`
}

type UserApplicationEntry struct {
	Application Application `json:"application"`
	AppConfigs  []AppConfig `json:"app_configs"`
}

type UserApplicationsResponse struct {
	SystemSettings map[string]string      `json:"system_settings"`
	Applications   []UserApplicationEntry `json:"applications"`
}
