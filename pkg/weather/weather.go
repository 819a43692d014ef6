// Package weather wraps the OpenWeather current-weather API. The response
// body is passed through untouched; the frontend picks the fields it wants.
package weather

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"TrackPulse/pkg/upstream"
)

const currentWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// Client talks to the OpenWeather API. If HTTP is nil a client with a 10
// second timeout is used. The zero value is ready for use once Key is set.
type Client struct {
	Key  string
	HTTP *http.Client
}

// Current fetches the current weather for the coordinates in metric units
// and returns the raw JSON body.
func (c *Client) Current(ctx context.Context, lat, lon string) (json.RawMessage, error) {
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: 10 * time.Second}
	}
	params := url.Values{
		"lat":   {lat},
		"lon":   {lon},
		"appid": {c.Key},
		"units": {"metric"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, currentWeatherURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &upstream.Error{Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}
