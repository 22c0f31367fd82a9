package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"planpal-api/config"
)

// PlacesService wraps the venue search provider: text search with an
// optional location bias, returning candidate venues for voting.
type PlacesService struct {
	config *config.Config
	client *http.Client
}

type Place struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Rating     float64 `json:"rating"`
	PriceLevel int     `json:"price_level"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type placesProviderResponse struct {
	Results []struct {
		Name       string  `json:"name"`
		Address    string  `json:"formatted_address"`
		Rating     float64 `json:"rating"`
		PriceLevel int     `json:"price_level"`
		Geometry   struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

func NewPlacesService(cfg *config.Config) *PlacesService {
	return &PlacesService{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Search performs a text search biased toward the given coordinates
// when both are non-nil.
func (ps *PlacesService) Search(query string, lat, lng *float64) ([]Place, error) {
	if query == "" {
		return nil, errors.New("search query is required")
	}
	if ps.config.PlacesAPIKey == "" {
		return nil, errors.New("places provider is not configured")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("key", ps.config.PlacesAPIKey)
	if lat != nil && lng != nil {
		params.Set("location", fmt.Sprintf("%f,%f", *lat, *lng))
		params.Set("radius", "5000")
	}

	resp, err := ps.client.Get(ps.config.PlacesAPIURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("places provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places provider returned status %d", resp.StatusCode)
	}

	var providerResp placesProviderResponse
	if err := json.NewDecoder(resp.Body).Decode(&providerResp); err != nil {
		return nil, fmt.Errorf("failed to decode places response: %w", err)
	}

	if providerResp.Status != "OK" && providerResp.Status != "ZERO_RESULTS" {
		msg := providerResp.ErrorMessage
		if msg == "" {
			msg = providerResp.Status
		}
		return nil, fmt.Errorf("places search failed: %s", msg)
	}

	places := make([]Place, 0, len(providerResp.Results))
	for _, r := range providerResp.Results {
		places = append(places, Place{
			Name:       r.Name,
			Address:    r.Address,
			Rating:     r.Rating,
			PriceLevel: r.PriceLevel,
			Latitude:   r.Geometry.Location.Lat,
			Longitude:  r.Geometry.Location.Lng,
		})
	}

	return places, nil
}
