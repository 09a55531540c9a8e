package model

import "time"

type Mood string

const (
	MoodGood      Mood = "GOOD"
	MoodEnergetic Mood = "ENERGETIC"
	MoodTired     Mood = "TIRED"
	MoodStressed  Mood = "STRESSED"
)

type WeatherInfo struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WeatherCode int     `json:"weather_code"`
}

type AirQualityInfo struct {
	AQI             *float64 `json:"aqi,omitempty"`
	PM25            *float64 `json:"pm2_5,omitempty"`
	PM10            *float64 `json:"pm10,omitempty"`
	CarbonMonoxide  *float64 `json:"carbon_monoxide,omitempty"`
	NitrogenDioxide *float64 `json:"nitrogen_dioxide,omitempty"`
	SulphurDioxide  *float64 `json:"sulphur_dioxide,omitempty"`
	Ozone           *float64 `json:"ozone,omitempty"`
}

type LocationInfo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
}

// EnvironmentalContext is captured once when a health log is written and
// never refreshed afterwards.
type EnvironmentalContext struct {
	Weather    WeatherInfo    `json:"weather"`
	AirQuality AirQualityInfo `json:"air_quality"`
	Location   *LocationInfo  `json:"location,omitempty"`
}

type HealthLog struct {
	ID          int64                 `json:"id"`
	FamilyID    string                `json:"family_id"`
	Author      string                `json:"author"`
	Timestamp   time.Time             `json:"timestamp"`
	Content     string                `json:"content"`
	Mood        Mood                  `json:"mood,omitempty"`
	Environment *EnvironmentalContext `json:"environmental_context,omitempty"`
}
