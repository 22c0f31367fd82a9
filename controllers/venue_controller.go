package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"planpal-api/services"
	"planpal-api/utils"
)

type VenueController struct {
	placesService  *services.PlacesService
	weatherService *services.WeatherService
}

func NewVenueController(placesService *services.PlacesService, weatherService *services.WeatherService) *VenueController {
	return &VenueController{
		placesService:  placesService,
		weatherService: weatherService,
	}
}

// SearchVenues proxies a text search to the places provider, with an
// optional lat/lng location bias.
func (vc *VenueController) SearchVenues(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.SendValidationError(c, "search query 'q' is required")
		return
	}

	var lat, lng *float64
	if latStr := c.Query("lat"); latStr != "" {
		v, err := strconv.ParseFloat(latStr, 64)
		if err != nil || !utils.IsValidLatitude(v) {
			utils.SendValidationError(c, "invalid latitude")
			return
		}
		lat = &v
	}
	if lngStr := c.Query("lng"); lngStr != "" {
		v, err := strconv.ParseFloat(lngStr, 64)
		if err != nil || !utils.IsValidLongitude(v) {
			utils.SendValidationError(c, "invalid longitude")
			return
		}
		lng = &v
	}

	places, err := vc.placesService.Search(query, lat, lng)
	if err != nil {
		utils.SendExternalServiceError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":  query,
		"count":  len(places),
		"venues": places,
	})
}

// GetWeather returns current conditions and venue advice for a coordinate.
func (vc *VenueController) GetWeather(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil || !utils.IsValidLatitude(lat) {
		utils.SendValidationError(c, "valid 'lat' is required")
		return
	}

	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil || !utils.IsValidLongitude(lng) {
		utils.SendValidationError(c, "valid 'lng' is required")
		return
	}

	report, err := vc.weatherService.CurrentConditions(lat, lng)
	if err != nil {
		utils.SendExternalServiceError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, report)
}
