// Package gifs wraps the Giphy search API. The dashboard only ever needs a
// single mood image so the search is limited to one G-rated result.
package gifs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"TrackPulse/pkg/upstream"
)

const searchURL = "https://api.giphy.com/v1/gifs/search"

// Client talks to the Giphy API. If HTTP is nil a client with a 10 second
// timeout is used.
type Client struct {
	Key  string
	HTTP *http.Client
}

// FirstURL returns the downsized URL of the first matching GIF, or an empty
// string when nothing matched.
func (c *Client) FirstURL(ctx context.Context, query string) (string, error) {
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: 10 * time.Second}
	}
	params := url.Values{
		"q":       {query},
		"api_key": {c.Key},
		"limit":   {"1"},
		"rating":  {"g"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &upstream.Error{Status: resp.StatusCode}
	}
	var body struct {
		Data []struct {
			Images struct {
				Downsized struct {
					URL string `json:"url"`
				} `json:"downsized"`
			} `json:"images"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if len(body.Data) == 0 {
		return "", nil
	}
	return body.Data[0].Images.Downsized.URL, nil
}
