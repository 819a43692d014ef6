package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	libspotify "github.com/zmb3/spotify"

	"TrackPulse/pkg/music"
	"TrackPulse/pkg/upstream"
)

func sampleSummary() music.TrackSummary {
	return music.TrackSummary{
		ID:      "t1",
		Name:    "Song",
		URI:     "spotify:track:t1",
		Artists: []music.ArtistSummary{{Name: "Artist"}},
		Album: music.AlbumSummary{
			Name:   "Album",
			Images: []libspotify.Image{{URL: "https://img.example/cover.jpg"}},
		},
		DurationMS: 201000,
	}
}

func TestProxyRequiresBearer(t *testing.T) {
	fm := &fakeMusic{}
	app := &Application{Music: fm}

	endpoints := []struct {
		name    string
		path    string
		handler http.HandlerFunc
	}{
		{"user", "/user", app.User},
		{"playlists", "/playlists", app.Playlists},
		{"liked songs", "/liked-songs", app.LikedSongs},
		{"top tracks", "/top-tracks", app.TopTracks},
		{"search", "/search?q=x", app.SearchTracks},
		{"playlist tracks", "/playlists/p1/tracks", app.PlaylistTracks},
	}
	for _, ep := range endpoints {
		t.Run(ep.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			ep.handler(rr, httptest.NewRequest(http.MethodGet, ep.path, nil))
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
			}
			var body map[string]string
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] != "Authorization header missing or invalid (Bearer token required)" {
				t.Errorf("error = %q", body["error"])
			}
		})
	}
	if fm.calls != 0 {
		t.Errorf("provider called %d times without a bearer token", fm.calls)
	}
}

func TestProxyRejectsNonBearerAuth(t *testing.T) {
	fm := &fakeMusic{}
	app := &Application{Music: fm}
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()
	app.User(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
	if fm.calls != 0 {
		t.Errorf("provider called %d times", fm.calls)
	}
}

func authed(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer the-token")
	return req
}

func TestUserForwardsBearerToken(t *testing.T) {
	fm := &fakeMusic{profile: &music.Profile{User: libspotify.User{ID: "alice", DisplayName: "Alice"}}}
	app := &Application{Music: fm}

	rr := httptest.NewRecorder()
	app.User(rr, authed(http.MethodGet, "/user"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	if fm.lastToken != "the-token" {
		t.Errorf("token forwarded = %q", fm.lastToken)
	}
	var body map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["id"] != "alice" {
		t.Errorf("profile id = %v", body["id"])
	}
}

func TestPlaylistsDefaultLimit(t *testing.T) {
	fm := &fakeMusic{playlists: []music.Playlist{}}
	app := &Application{Music: fm}

	rr := httptest.NewRecorder()
	app.Playlists(rr, authed(http.MethodGet, "/playlists"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if fm.lastLimit != 20 {
		t.Errorf("limit = %d, want 20", fm.lastLimit)
	}
}

func TestLikedSongsPassesPagination(t *testing.T) {
	fm := &fakeMusic{liked: []music.SavedTrack{}}
	app := &Application{Music: fm}

	rr := httptest.NewRecorder()
	app.LikedSongs(rr, authed(http.MethodGet, "/liked-songs?limit=5&offset=10"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if fm.lastLimit != 5 || fm.lastOffset != 10 {
		t.Errorf("limit/offset = %d/%d, want 5/10", fm.lastLimit, fm.lastOffset)
	}
}

func TestLikedSongsIgnoresMalformedPagination(t *testing.T) {
	fm := &fakeMusic{liked: []music.SavedTrack{}}
	app := &Application{Music: fm}

	rr := httptest.NewRecorder()
	app.LikedSongs(rr, authed(http.MethodGet, "/liked-songs?limit=abc&offset=-3"))

	if fm.lastLimit != 20 || fm.lastOffset != 0 {
		t.Errorf("limit/offset = %d/%d, want defaults 20/0", fm.lastLimit, fm.lastOffset)
	}
}

func TestTopTracksDefaultsTimeRange(t *testing.T) {
	fm := &fakeMusic{top: []music.Track{}}
	app := &Application{Music: fm}

	rr := httptest.NewRecorder()
	app.TopTracks(rr, authed(http.MethodGet, "/top-tracks"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if fm.lastTimeRange != "medium_term" {
		t.Errorf("time_range = %q, want medium_term", fm.lastTimeRange)
	}

	app.TopTracks(httptest.NewRecorder(), authed(http.MethodGet, "/top-tracks?time_range=short_term"))
	if fm.lastTimeRange != "short_term" {
		t.Errorf("time_range = %q, want short_term", fm.lastTimeRange)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	fm := &fakeMusic{}
	app := &Application{Music: fm}

	rr := httptest.NewRecorder()
	app.SearchTracks(rr, authed(http.MethodGet, "/search"))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "Search query is required" {
		t.Errorf("error = %q", body["error"])
	}
	if fm.calls != 0 {
		t.Errorf("provider called %d times with no query", fm.calls)
	}
}

func TestSearchReturnsReshapedTracks(t *testing.T) {
	fm := &fakeMusic{summaries: []music.TrackSummary{sampleSummary()}}
	app := &Application{Music: fm}

	rr := httptest.NewRecorder()
	app.SearchTracks(rr, authed(http.MethodGet, "/search?q=song"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	if fm.lastQuery != "song" || fm.lastLimit != 20 || fm.lastOffset != 0 {
		t.Errorf("query/limit/offset = %q/%d/%d", fm.lastQuery, fm.lastLimit, fm.lastOffset)
	}

	var body struct {
		Tracks []map[string]json.RawMessage `json:"tracks"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(body.Tracks))
	}
	for _, field := range []string{"id", "name", "uri", "artists", "album", "duration_ms"} {
		if _, ok := body.Tracks[0][field]; !ok {
			t.Errorf("track missing field %q", field)
		}
	}
	if len(body.Tracks[0]) != 6 {
		t.Errorf("track has %d fields, want exactly 6", len(body.Tracks[0]))
	}
}

func TestSearchRelaysUpstreamError(t *testing.T) {
	fm := &fakeMusic{err: &upstream.Error{Status: http.StatusBadGateway, Message: "provider down"}}
	app := &Application{Music: fm}

	rr := httptest.NewRecorder()
	app.SearchTracks(rr, authed(http.MethodGet, "/search?q=song"))

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "provider down" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestUserFallbackMessageForOpaqueError(t *testing.T) {
	fm := &fakeMusic{err: &upstream.Error{Status: http.StatusForbidden}}
	app := &Application{Music: fm}

	rr := httptest.NewRecorder()
	app.User(rr, authed(http.MethodGet, "/user"))

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "Failed fetching user data" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestPlaylistTracksParsesPath(t *testing.T) {
	fm := &fakeMusic{summaries: []music.TrackSummary{}}
	app := &Application{Music: fm}

	rr := httptest.NewRecorder()
	app.PlaylistTracks(rr, authed(http.MethodGet, "/playlists/37i9dQ/tracks"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if fm.lastPlaylist != "37i9dQ" {
		t.Errorf("playlist id = %q", fm.lastPlaylist)
	}
	if fm.lastLimit != 50 {
		t.Errorf("limit = %d, want 50", fm.lastLimit)
	}
}

func TestPlaylistTracksRejectsBadPaths(t *testing.T) {
	fm := &fakeMusic{}
	app := &Application{Music: fm}

	for _, path := range []string{"/playlists/abc", "/playlists//tracks", "/playlists/a/b/tracks"} {
		rr := httptest.NewRecorder()
		app.PlaylistTracks(rr, authed(http.MethodGet, path))
		if rr.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, rr.Code)
		}
	}
	if fm.calls != 0 {
		t.Errorf("provider called %d times for bad paths", fm.calls)
	}
}
