// Package geocode suggests addresses and their coordinates from a
// Geoapify-style autocomplete endpoint. Registration uses it to turn
// the typed address into the coordinate stored on the profile.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"rentify-backend/internal/logger"
)

// Place is one address suggestion.
type Place struct {
	PlaceID   string `json:"place_id"`
	Address   string `json:"address"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type autocompleteResponse struct {
	Features []struct {
		Properties struct {
			PlaceID   string  `json:"place_id"`
			Formatted string  `json:"formatted"`
			Lat       float64 `json:"lat"`
			Lon       float64 `json:"lon"`
		} `json:"properties"`
	} `json:"features"`
}

// Suggest returns up to limit address suggestions for the typed text.
func (c *Client) Suggest(ctx context.Context, text string, limit int) ([]Place, error) {
	if limit <= 0 {
		limit = 5
	}
	params := url.Values{}
	params.Set("text", text)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("format", "geojson")
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	logger.ExternalServiceCall("geocoder", "Suggest")
	resp, err := c.http.Do(req)
	logger.ExternalServiceResult("geocoder", "Suggest", err)
	if err != nil {
		return nil, fmt.Errorf("geocoder request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned %d", resp.StatusCode)
	}

	var body autocompleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode geocoder response: %w", err)
	}

	places := make([]Place, 0, len(body.Features))
	for _, f := range body.Features {
		places = append(places, Place{
			PlaceID:   f.Properties.PlaceID,
			Address:   f.Properties.Formatted,
			Latitude:  strconv.FormatFloat(f.Properties.Lat, 'f', -1, 64),
			Longitude: strconv.FormatFloat(f.Properties.Lon, 'f', -1, 64),
		})
	}
	return places, nil
}
