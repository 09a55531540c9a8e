package appconfig

import (
	"reflect"
	"testing"

	"hearth/internal/model"
)

func TestMergeLeafOverrideWins(t *testing.T) {
	base := model.ConfigData{"theme": "light", "volume": float64(3)}
	override := model.ConfigData{"theme": "dark"}

	got := Merge(base, override)
	if got["theme"] != "dark" {
		t.Errorf("theme = %v, want dark", got["theme"])
	}
	if got["volume"] != float64(3) {
		t.Errorf("volume = %v, want 3", got["volume"])
	}
}

func TestMergeNestedMapsRecurse(t *testing.T) {
	base := model.ConfigData{
		"display": map[string]any{"brightness": float64(80), "orientation": "landscape"},
	}
	override := model.ConfigData{
		"display": map[string]any{"brightness": float64(50)},
	}

	got := Merge(base, override)
	display, ok := got["display"].(model.ConfigData)
	if !ok {
		t.Fatalf("display = %T, want ConfigData", got["display"])
	}
	if display["brightness"] != float64(50) {
		t.Errorf("brightness = %v, want 50", display["brightness"])
	}
	if display["orientation"] != "landscape" {
		t.Errorf("orientation = %v, want landscape", display["orientation"])
	}
}

func TestMergeArraysReplace(t *testing.T) {
	base := model.ConfigData{"tabs": []any{"daily", "health", "knowledge"}}
	override := model.ConfigData{"tabs": []any{"daily"}}

	got := Merge(base, override)
	if !reflect.DeepEqual(got["tabs"], []any{"daily"}) {
		t.Errorf("tabs = %v, want [daily]", got["tabs"])
	}
}

func TestMergeTypeMismatchOverrideWins(t *testing.T) {
	base := model.ConfigData{"alerts": map[string]any{"enabled": true}}
	override := model.ConfigData{"alerts": false}

	got := Merge(base, override)
	if got["alerts"] != false {
		t.Errorf("alerts = %v, want false", got["alerts"])
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := model.ConfigData{"nested": map[string]any{"a": float64(1)}}
	override := model.ConfigData{"nested": map[string]any{"b": float64(2)}}

	Merge(base, override)
	if _, ok := base["nested"].(map[string]any)["b"]; ok {
		t.Error("base mutated by merge")
	}
}

func TestEffective(t *testing.T) {
	app := model.Application{DefaultConfig: model.ConfigData{"theme": "light", "locale": "en"}}
	cfg := model.AppConfig{ConfigData: model.ConfigData{"theme": "dark"}}

	got := Effective(app, cfg)
	if got["theme"] != "dark" || got["locale"] != "en" {
		t.Errorf("effective = %v, want dark theme with en locale", got)
	}
}
