package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewSupabaseClient returns a REST client for a Supabase project's
// PostgREST endpoint, authenticated with the project API key.
func NewSupabaseClient(baseURL, apiKey string, timeout time.Duration) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("apikey", apiKey).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return client
}
