// Package websearch wraps the Google Custom Search API. It backs both the
// generic web search endpoint and the lyrics lookup, which only differ in
// how the query string is built.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"TrackPulse/pkg/upstream"
)

const customSearchURL = "https://www.googleapis.com/customsearch/v1"

// Result is one search hit reduced to what the frontend renders.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Client talks to the Custom Search API. Key is the API key, EngineID the
// search engine (cx) identifier. If HTTP is nil a client with a 10 second
// timeout is used.
type Client struct {
	Key      string
	EngineID string
	HTTP     *http.Client
}

// Search returns up to five results for the query.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: 10 * time.Second}
	}
	params := url.Values{
		"key": {c.Key},
		"cx":  {c.EngineID},
		"q":   {query},
		"num": {"5"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, customSearchURL+"?"+params.Encode(), nil)
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
		Items []Result `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Items == nil {
		return []Result{}, nil
	}
	return body.Items, nil
}

// LyricsQuery builds the quoted-phrase query used for lyrics lookups so the
// engine matches the exact track and artist names.
func LyricsQuery(trackName, artistName string) string {
	return fmt.Sprintf("%q %q lyrics", trackName, artistName)
}
