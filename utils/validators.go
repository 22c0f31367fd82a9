package utils

import (
	"regexp"
)

var (
	emailRegex     = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	shareCodeRegex = regexp.MustCompile(`^[A-Z0-9]{6}$`)
	dateRegex      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegex      = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidShareCode(code string) bool {
	return shareCodeRegex.MatchString(code)
}

// IsValidDate checks the YYYY-MM-DD shape used for plan and option dates
func IsValidDate(date string) bool {
	return dateRegex.MatchString(date)
}

// IsValidTime checks the HH:MM shape
func IsValidTime(t string) bool {
	return timeRegex.MatchString(t)
}

func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func IsValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
