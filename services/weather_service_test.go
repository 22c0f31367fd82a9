package services

import (
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planpal-api/config"
)

func TestCurrentConditionsMockFallback(t *testing.T) {
	ws := NewWeatherService(&config.Config{WeatherAPIKey: ""})

	report, err := ws.CurrentConditions(40.7, -74.0)
	require.NoError(t, err)
	assert.True(t, report.Mock)
	assert.False(t, report.PreferIndoor)
	assert.NotEmpty(t, report.Recommendations)
}

func TestCurrentConditionsRainPrefersIndoor(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://weather\.test/current`,
		httpmock.NewStringResponder(200, `{
			"current": {
				"temp_c": 14.5,
				"condition": {"text": "Moderate rain", "code": 1189},
				"precip_mm": 3.2,
				"wind_kph": 12
			}
		}`))

	ws := NewWeatherService(&config.Config{
		WeatherAPIURL: "https://weather.test/current",
		WeatherAPIKey: "key",
	})

	report, err := ws.CurrentConditions(51.5, -0.1)
	require.NoError(t, err)
	assert.False(t, report.Mock)
	assert.Equal(t, 14.5, report.TemperatureC)
	assert.Equal(t, "Moderate rain", report.Condition)
	assert.True(t, report.PreferIndoor)
}

func TestCurrentConditionsProviderError(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://weather\.test/current`,
		httpmock.NewStringResponder(500, "upstream broken"))

	ws := NewWeatherService(&config.Config{
		WeatherAPIURL: "https://weather.test/current",
		WeatherAPIKey: "key",
	})

	_, err := ws.CurrentConditions(51.5, -0.1)
	assert.Error(t, err)
}

func TestPreferIndoorThresholds(t *testing.T) {
	tests := []struct {
		name     string
		tempC    float64
		precipMm float64
		windKph  float64
		want     bool
	}{
		{name: "mild and dry", tempC: 20, want: false},
		{name: "rain", tempC: 20, precipMm: 2, want: true},
		{name: "gale", tempC: 20, windKph: 50, want: true},
		{name: "freezing", tempC: 2, want: true},
		{name: "heatwave", tempC: 35, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preferIndoor(tt.tempC, tt.precipMm, tt.windKph))
		})
	}
}
