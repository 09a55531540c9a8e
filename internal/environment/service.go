package environment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"hearth/internal/model"
)

// Service aggregates weather, air quality, and a reverse-geocoded place
// name for a position.
type Service struct {
	client     *http.Client
	weatherURL string
	airURL     string
	geocodeURL string
}

func NewService() *Service {
	return &Service{
		client:     &http.Client{Timeout: 10 * time.Second},
		weatherURL: "https://api.open-meteo.com/v1/forecast",
		airURL:     "https://air-quality-api.open-meteo.com/v1/air-quality",
		geocodeURL: "https://api.bigdatacloud.net/data/reverse-geocode-client",
	}
}

// Snapshot locates the device and fetches weather and air quality
// concurrently. The place name is optional: a geocoding failure leaves
// the coordinates bare rather than failing the snapshot.
func (s *Service) Snapshot(ctx context.Context, loc Locator) (*model.EnvironmentalContext, error) {
	coords, err := loc.Locate(ctx)
	if err != nil {
		return nil, err
	}

	var env model.EnvironmentalContext
	env.Location = &model.LocationInfo{Latitude: coords.Latitude, Longitude: coords.Longitude}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w, err := s.fetchWeather(ctx, coords)
		if err != nil {
			return err
		}
		env.Weather = *w
		return nil
	})
	g.Go(func() error {
		aq, err := s.fetchAirQuality(ctx, coords)
		if err != nil {
			return err
		}
		env.AirQuality = *aq
		return nil
	})
	g.Go(func() error {
		name, err := s.fetchPlaceName(ctx, coords)
		if err == nil {
			env.Location.Name = name
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &env, nil
}

type weatherResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
}

func (s *Service) fetchWeather(ctx context.Context, c Coordinates) (*model.WeatherInfo, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", c.Latitude))
	q.Set("longitude", fmt.Sprintf("%.4f", c.Longitude))
	q.Set("current", "temperature_2m,relative_humidity_2m,weather_code")

	var out weatherResponse
	if err := s.getJSON(ctx, s.weatherURL+"?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("weather: %w", err)
	}
	return &model.WeatherInfo{
		Temperature: out.Current.Temperature,
		Humidity:    out.Current.Humidity,
		WeatherCode: out.Current.WeatherCode,
	}, nil
}

type airQualityResponse struct {
	Current struct {
		USAQI           *float64 `json:"us_aqi"`
		PM25            *float64 `json:"pm2_5"`
		PM10            *float64 `json:"pm10"`
		CarbonMonoxide  *float64 `json:"carbon_monoxide"`
		NitrogenDioxide *float64 `json:"nitrogen_dioxide"`
		SulphurDioxide  *float64 `json:"sulphur_dioxide"`
		Ozone           *float64 `json:"ozone"`
	} `json:"current"`
}

func (s *Service) fetchAirQuality(ctx context.Context, c Coordinates) (*model.AirQualityInfo, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", c.Latitude))
	q.Set("longitude", fmt.Sprintf("%.4f", c.Longitude))
	q.Set("current", "us_aqi,pm2_5,pm10,carbon_monoxide,nitrogen_dioxide,sulphur_dioxide,ozone")

	var out airQualityResponse
	if err := s.getJSON(ctx, s.airURL+"?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("air quality: %w", err)
	}
	return &model.AirQualityInfo{
		AQI:             out.Current.USAQI,
		PM25:            out.Current.PM25,
		PM10:            out.Current.PM10,
		CarbonMonoxide:  out.Current.CarbonMonoxide,
		NitrogenDioxide: out.Current.NitrogenDioxide,
		SulphurDioxide:  out.Current.SulphurDioxide,
		Ozone:           out.Current.Ozone,
	}, nil
}

type geocodeResponse struct {
	City     string `json:"city"`
	Locality string `json:"locality"`
}

func (s *Service) fetchPlaceName(ctx context.Context, c Coordinates) (string, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", c.Latitude))
	q.Set("longitude", fmt.Sprintf("%.4f", c.Longitude))
	q.Set("localityLanguage", "en")

	var out geocodeResponse
	if err := s.getJSON(ctx, s.geocodeURL+"?"+q.Encode(), &out); err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}
	if out.City != "" {
		return out.City, nil
	}
	if out.Locality != "" {
		return out.Locality, nil
	}
	return "", fmt.Errorf("no place name in response")
}

func (s *Service) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
