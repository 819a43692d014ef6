// This file contains the unauthenticated content proxy endpoints feeding the
// "now playing" insights view: weather at the listener's location, news
// about the artist, a mood GIF and generic web search results. Each handler
// validates its parameters, checks that its API client is configured and
// forwards a single call; a missing API key is a server configuration error
// reported without contacting the provider.
package handlers

import (
	"net/http"

	"TrackPulse/pkg/websearch"
)

// WeatherJSON proxies the current weather for the given coordinates.
func (app *Application) WeatherJSON(w http.ResponseWriter, r *http.Request) {
	lat := r.URL.Query().Get("lat")
	lon := r.URL.Query().Get("lon")
	if lat == "" || lon == "" {
		respondJSONError(w, http.StatusBadRequest, "Missing latitude or longitude")
		return
	}
	if app.Weather == nil {
		respondJSONError(w, http.StatusInternalServerError, "Server configuration error for weather.")
		return
	}
	body, err := app.Weather.Current(r.Context(), lat, lon)
	if err != nil {
		relayUpstream(w, "/api/weather", err, "Failed fetching weather data.")
		return
	}
	respondRawJSON(w, http.StatusOK, body)
}

// NewsJSON proxies recent articles matching the query.
func (app *Application) NewsJSON(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respondJSONError(w, http.StatusBadRequest, "Missing query")
		return
	}
	if app.News == nil {
		respondJSONError(w, http.StatusInternalServerError, "Server configuration error for news.")
		return
	}
	articles, err := app.News.Articles(r.Context(), q)
	if err != nil {
		relayUpstream(w, "/api/news", err, "Failed fetching news articles.")
		return
	}
	respondRawJSON(w, http.StatusOK, articles)
}

// GifJSON returns a single mood GIF URL for the query, or null when nothing
// matched.
func (app *Application) GifJSON(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respondJSONError(w, http.StatusBadRequest, "Missing query parameter (q).")
		return
	}
	if app.Gifs == nil {
		respondJSONError(w, http.StatusInternalServerError, "Server configuration error for GIFs.")
		return
	}
	gifURL, err := app.Gifs.FirstURL(r.Context(), q)
	if err != nil {
		relayUpstream(w, "/api/gifs", err, "Failed fetching GIF.")
		return
	}
	var payload any
	if gifURL != "" {
		payload = gifURL
	}
	respondJSON(w, http.StatusOK, map[string]any{"url": payload})
}

// WebSearchJSON proxies a generic web search.
func (app *Application) WebSearchJSON(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respondJSONError(w, http.StatusBadRequest, "Missing search query parameter (q).")
		return
	}
	if app.Search == nil {
		respondJSONError(w, http.StatusInternalServerError, "Server configuration error for search.")
		return
	}
	results, err := app.Search.Search(r.Context(), q)
	if err != nil {
		relayUpstream(w, "/api/search", err, "Failed fetching search results.")
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// LyricsSearchJSON builds a quoted-phrase query from the track and artist
// names and forwards it to the web search provider.
func (app *Application) LyricsSearchJSON(w http.ResponseWriter, r *http.Request) {
	trackName := r.URL.Query().Get("trackName")
	artistName := r.URL.Query().Get("artistName")
	if trackName == "" || artistName == "" {
		respondJSONError(w, http.StatusBadRequest, "Missing trackName or artistName query parameter.")
		return
	}
	if app.Search == nil {
		respondJSONError(w, http.StatusInternalServerError, "Server configuration error for lyrics search.")
		return
	}
	results, err := app.Search.Search(r.Context(), websearch.LyricsQuery(trackName, artistName))
	if err != nil {
		relayUpstream(w, "/api/search-lyrics", err, "Failed fetching search results for lyrics.")
		return
	}
	respondJSON(w, http.StatusOK, results)
}
