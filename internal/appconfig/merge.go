// Package appconfig computes effective application configuration by
// structurally merging user overrides onto defaults.
package appconfig

import "hearth/internal/model"

// Merge combines override onto base recursively. Nested maps merge key
// by key, the override wins at leaves, and arrays replace wholly rather
// than concatenating. Neither input is mutated.
func Merge(base, override model.ConfigData) model.ConfigData {
	out := make(model.ConfigData, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, ov := range override {
		bv, exists := out[k]
		if !exists {
			out[k] = ov
			continue
		}
		bm, baseIsMap := asConfigData(bv)
		om, overrideIsMap := asConfigData(ov)
		if baseIsMap && overrideIsMap {
			out[k] = Merge(bm, om)
			continue
		}
		out[k] = ov
	}
	return out
}

// Effective resolves a user's config for an application: the app's
// defaults with the stored override merged on top.
func Effective(app model.Application, cfg model.AppConfig) model.ConfigData {
	return Merge(app.DefaultConfig, cfg.ConfigData)
}

func asConfigData(v any) (model.ConfigData, bool) {
	switch m := v.(type) {
	case model.ConfigData:
		return m, true
	case map[string]any:
		return model.ConfigData(m), true
	}
	return nil, false
}
