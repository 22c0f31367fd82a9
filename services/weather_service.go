package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"planpal-api/config"
)

// WeatherService looks up current conditions for a coordinate and
// derives venue advice from them. Without an API key it serves a fixed
// mock payload so the rest of the app keeps working in development.
type WeatherService struct {
	config *config.Config
	client *http.Client
}

type WeatherReport struct {
	TemperatureC    float64  `json:"temperature_c"`
	Condition       string   `json:"condition"`
	PreferIndoor    bool     `json:"prefer_indoor"`
	Recommendations []string `json:"recommendations"`
	Mock            bool     `json:"mock"`
}

type weatherProviderResponse struct {
	Current struct {
		TempC     float64 `json:"temp_c"`
		Condition struct {
			Text string `json:"text"`
			Code int    `json:"code"`
		} `json:"condition"`
		PrecipMm float64 `json:"precip_mm"`
		WindKph  float64 `json:"wind_kph"`
	} `json:"current"`
}

func NewWeatherService(cfg *config.Config) *WeatherService {
	return &WeatherService{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// CurrentConditions returns the weather report for a coordinate.
func (ws *WeatherService) CurrentConditions(lat, lng float64) (*WeatherReport, error) {
	if ws.config.WeatherAPIKey == "" {
		return mockWeatherReport(), nil
	}

	params := url.Values{}
	params.Set("key", ws.config.WeatherAPIKey)
	params.Set("q", fmt.Sprintf("%f,%f", lat, lng))

	resp, err := ws.client.Get(ws.config.WeatherAPIURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("weather provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	var providerResp weatherProviderResponse
	if err := json.NewDecoder(resp.Body).Decode(&providerResp); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	report := &WeatherReport{
		TemperatureC: providerResp.Current.TempC,
		Condition:    providerResp.Current.Condition.Text,
	}
	report.PreferIndoor = preferIndoor(providerResp.Current.TempC, providerResp.Current.PrecipMm, providerResp.Current.WindKph)
	report.Recommendations = buildRecommendations(report)

	return report, nil
}

// preferIndoor flags conditions unsuitable for outdoor plans:
// precipitation, strong wind, or temperatures outside 5-32 C.
func preferIndoor(tempC, precipMm, windKph float64) bool {
	if precipMm > 0.5 {
		return true
	}
	if windKph > 40 {
		return true
	}
	return tempC < 5 || tempC > 32
}

func buildRecommendations(report *WeatherReport) []string {
	var recs []string

	if report.PreferIndoor {
		recs = append(recs, "Conditions favor an indoor venue for this date.")
	} else {
		recs = append(recs, "Looks good for outdoor activities.")
	}

	if report.TemperatureC > 28 {
		recs = append(recs, "It will be hot, plan for shade and water.")
	}
	if report.TemperatureC < 10 {
		recs = append(recs, "Dress warmly if any part of the event is outside.")
	}

	return recs
}

func mockWeatherReport() *WeatherReport {
	report := &WeatherReport{
		TemperatureC: 21,
		Condition:    "Partly cloudy",
		PreferIndoor: false,
		Mock:         true,
	}
	report.Recommendations = buildRecommendations(report)
	return report
}
