// This file implements the authenticated proxy endpoints. Every handler
// follows the same shape: extract the bearer token from the Authorization
// header (the token store is never consulted here — the browser owns its
// token), forward exactly one call to the provider, and either relay the
// response or the upstream failure status. Required parameters are checked
// before anything leaves the server.
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"TrackPulse/pkg/upstream"
)

const (
	defaultLimit         = 20
	defaultPlaylistLimit = 50
	defaultTimeRange     = "medium_term"
)

// requireBearer extracts the bearer token or answers 401. No upstream call
// may be made when it returns false.
func requireBearer(w http.ResponseWriter, r *http.Request) (string, bool) {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, prefix) || h == prefix {
		respondJSONError(w, http.StatusUnauthorized, "Authorization header missing or invalid (Bearer token required)")
		return "", false
	}
	return h[len(prefix):], true
}

// queryInt reads an integer query parameter, falling back to def for
// missing or malformed values.
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// relayUpstream logs the failure and answers with the upstream status (500
// when unknown) and a best-effort message.
func relayUpstream(w http.ResponseWriter, endpoint string, err error, fallbackMsg string) {
	status := upstream.StatusOf(err, http.StatusInternalServerError)
	log.WithError(err).WithField("endpoint", endpoint).WithField("status", status).Error("upstream request failed")
	respondJSONError(w, status, upstream.MessageOf(err, fallbackMsg))
}

// User proxies the provider profile endpoint, passing the body through.
func (app *Application) User(w http.ResponseWriter, r *http.Request) {
	tok, ok := requireBearer(w, r)
	if !ok {
		return
	}
	profile, err := app.Music.CurrentUser(r.Context(), tok)
	if err != nil {
		relayUpstream(w, "/user", err, "Failed fetching user data")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// Playlists lists the user's playlists.
func (app *Application) Playlists(w http.ResponseWriter, r *http.Request) {
	tok, ok := requireBearer(w, r)
	if !ok {
		return
	}
	limit := queryInt(r, "limit", defaultLimit)
	items, err := app.Music.Playlists(r.Context(), tok, limit)
	if err != nil {
		relayUpstream(w, "/playlists", err, "Failed fetching playlists")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// LikedSongs lists the user's saved tracks.
func (app *Application) LikedSongs(w http.ResponseWriter, r *http.Request) {
	tok, ok := requireBearer(w, r)
	if !ok {
		return
	}
	limit := queryInt(r, "limit", defaultLimit)
	offset := queryInt(r, "offset", 0)
	items, err := app.Music.LikedSongs(r.Context(), tok, limit, offset)
	if err != nil {
		relayUpstream(w, "/liked-songs", err, "Failed fetching liked songs")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// TopTracks lists the user's most played tracks for the requested range.
func (app *Application) TopTracks(w http.ResponseWriter, r *http.Request) {
	tok, ok := requireBearer(w, r)
	if !ok {
		return
	}
	limit := queryInt(r, "limit", defaultLimit)
	offset := queryInt(r, "offset", 0)
	timeRange := r.URL.Query().Get("time_range")
	if timeRange == "" {
		timeRange = defaultTimeRange
	}
	items, err := app.Music.TopTracks(r.Context(), tok, limit, offset, timeRange)
	if err != nil {
		relayUpstream(w, "/top-tracks", err, "Failed to fetch top tracks")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// SearchTracks runs a track search and returns the reshaped projection
// under a `tracks` key.
func (app *Application) SearchTracks(w http.ResponseWriter, r *http.Request) {
	tok, ok := requireBearer(w, r)
	if !ok {
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		respondJSONError(w, http.StatusBadRequest, "Search query is required")
		return
	}
	limit := queryInt(r, "limit", defaultLimit)
	offset := queryInt(r, "offset", 0)
	tracks, err := app.Music.SearchTracks(r.Context(), tok, q, limit, offset)
	if err != nil {
		relayUpstream(w, "/search", err, "Failed to search tracks")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tracks": tracks})
}

// PlaylistTracks lists a playlist's tracks in reshaped form. The playlist
// ID is extracted from the path `/playlists/{id}/tracks`.
func (app *Application) PlaylistTracks(w http.ResponseWriter, r *http.Request) {
	tok, ok := requireBearer(w, r)
	if !ok {
		return
	}
	if !strings.HasSuffix(r.URL.Path, "/tracks") {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/playlists/"), "/tracks")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	limit := queryInt(r, "limit", defaultPlaylistLimit)
	offset := queryInt(r, "offset", 0)
	tracks, err := app.Music.PlaylistTracks(r.Context(), tok, id, limit, offset)
	if err != nil {
		relayUpstream(w, "/playlists/:id/tracks", err, "Failed to fetch playlist tracks")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tracks": tracks})
}
