package services

import (
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planpal-api/config"
)

func testPlacesConfig() *config.Config {
	return &config.Config{
		PlacesAPIURL: "https://places.test/search",
		PlacesAPIKey: "key",
	}
}

func TestSearchParsesPlaces(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://places\.test/search`,
		httpmock.NewStringResponder(200, `{
			"status": "OK",
			"results": [
				{
					"name": "The Alcove",
					"formatted_address": "41 E 11th St, New York, NY",
					"rating": 4.6,
					"price_level": 2,
					"geometry": {"location": {"lat": 40.733, "lng": -73.993}}
				},
				{
					"name": "Westside Tavern",
					"formatted_address": "360 W 23rd St, New York, NY",
					"rating": 4.2,
					"price_level": 1,
					"geometry": {"location": {"lat": 40.745, "lng": -73.998}}
				}
			]
		}`))

	ps := NewPlacesService(testPlacesConfig())

	lat, lng := 40.74, -73.99
	places, err := ps.Search("cocktail bar", &lat, &lng)
	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.Equal(t, "The Alcove", places[0].Name)
	assert.Equal(t, "41 E 11th St, New York, NY", places[0].Address)
	assert.Equal(t, 4.6, places[0].Rating)
	assert.Equal(t, 2, places[0].PriceLevel)
	assert.Equal(t, 40.733, places[0].Latitude)
	assert.Equal(t, -73.993, places[0].Longitude)
}

func TestSearchZeroResults(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://places\.test/search`,
		httpmock.NewStringResponder(200, `{"status": "ZERO_RESULTS", "results": []}`))

	ps := NewPlacesService(testPlacesConfig())

	places, err := ps.Search("nothing here", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestSearchProviderDenied(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", `=~^https://places\.test/search`,
		httpmock.NewStringResponder(200, `{"status": "REQUEST_DENIED", "error_message": "bad key", "results": []}`))

	ps := NewPlacesService(testPlacesConfig())

	_, err := ps.Search("anything", nil, nil)
	assert.ErrorContains(t, err, "bad key")
}

func TestSearchRequiresQueryAndKey(t *testing.T) {
	ps := NewPlacesService(testPlacesConfig())
	_, err := ps.Search("", nil, nil)
	assert.Error(t, err)

	unconfigured := NewPlacesService(&config.Config{PlacesAPIURL: "https://places.test/search"})
	_, err = unconfigured.Search("bar", nil, nil)
	assert.Error(t, err)
}
