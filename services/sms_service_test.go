package services

import (
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planpal-api/config"
)

func testSMSConfig() *config.Config {
	return &config.Config{
		SMSAPIURL:          "https://sms.test/v1/messages",
		SMSAPIToken:        "test-token",
		DefaultCountryCode: "+1",
	}
}

func TestNormalizePhoneNumber(t *testing.T) {
	s := NewSMSService(testSMSConfig())

	tests := []struct {
		name        string
		raw         string
		countryCode string
		want        string
		wantErr     bool
	}{
		{name: "already E.164", raw: "+447700900123", want: "+447700900123"},
		{name: "E.164 with spaces", raw: "+44 7700 900 123", want: "+447700900123"},
		{name: "bare number uses default", raw: "5551234567", want: "+15551234567"},
		{name: "formatted bare number", raw: "(555) 123-4567", want: "+15551234567"},
		{name: "explicit country code wins", raw: "7700900123", countryCode: "44", want: "+447700900123"},
		{name: "explicit code with plus", raw: "7700900123", countryCode: "+44", want: "+447700900123"},
		{name: "empty input", raw: "", wantErr: true},
		{name: "no digits", raw: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.NormalizePhoneNumber(tt.raw, tt.countryCode)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePhoneNumberNoDefaultConfigured(t *testing.T) {
	cfg := testSMSConfig()
	cfg.DefaultCountryCode = ""
	s := NewSMSService(cfg)

	_, err := s.NormalizePhoneNumber("5551234567", "")
	assert.Error(t, err, "bare numbers must be rejected rather than guessed")
}

func TestSendBatchSummaries(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, "https://sms.test/v1/messages",
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"success":    true,
			"message_id": "msg-1",
		}))

	s := NewSMSService(testSMSConfig())

	summary := s.SendBatch([]string{"+15551234567", "not-a-number"}, "You're invited!", "")

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Results, 2)

	assert.True(t, summary.Results[0].Success)
	assert.Equal(t, "+15551234567", summary.Results[0].Normalized)
	assert.False(t, summary.Results[1].Success)
	assert.NotEmpty(t, summary.Results[1].Error)

	// The invalid number never reaches the provider
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestSendBatchProviderFailure(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, "https://sms.test/v1/messages",
		httpmock.NewJsonResponderOrPanic(402, map[string]interface{}{
			"success": false,
			"error":   "insufficient credit",
		}))

	s := NewSMSService(testSMSConfig())

	summary := s.SendBatch([]string{"+15551234567"}, "You're invited!", "")

	assert.Equal(t, 0, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, summary.Results[0].Error, "insufficient credit")
}
