// Package news wraps the NewsAPI "everything" endpoint. Used by the
// dashboard to show recent articles about the currently playing artist.
package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"TrackPulse/pkg/upstream"
)

const everythingURL = "https://newsapi.org/v2/everything"

// Client talks to NewsAPI. If HTTP is nil a client with a 10 second timeout
// is used.
type Client struct {
	Key  string
	HTTP *http.Client
}

// Articles returns the five most recent English articles matching the query
// as a raw JSON array.
func (c *Client) Articles(ctx context.Context, query string) (json.RawMessage, error) {
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: 10 * time.Second}
	}
	params := url.Values{
		"q":        {query},
		"apiKey":   {c.Key},
		"pageSize": {"5"},
		"sortBy":   {"publishedAt"},
		"language": {"en"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, everythingURL+"?"+params.Encode(), nil)
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
	var body struct {
		Articles json.RawMessage `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body.Articles) == 0 || string(body.Articles) == "null" {
		return json.RawMessage("[]"), nil
	}
	return body.Articles, nil
}
