package handlers

import (
	"context"

	"TrackPulse/pkg/music"
)

// fakeMusic implements music.Service for tests. It counts provider calls so
// tests can assert that rejected requests never reach upstream, and records
// the parameters of the last call.
type fakeMusic struct {
	calls int
	err   error

	profile   *music.Profile
	playlists []music.Playlist
	liked     []music.SavedTrack
	top       []music.Track
	summaries []music.TrackSummary

	lastToken     string
	lastQuery     string
	lastPlaylist  string
	lastLimit     int
	lastOffset    int
	lastTimeRange string
}

func (f *fakeMusic) CurrentUser(_ context.Context, token string) (*music.Profile, error) {
	f.calls++
	f.lastToken = token
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func (f *fakeMusic) Playlists(_ context.Context, token string, limit int) ([]music.Playlist, error) {
	f.calls++
	f.lastToken, f.lastLimit = token, limit
	if f.err != nil {
		return nil, f.err
	}
	return f.playlists, nil
}

func (f *fakeMusic) LikedSongs(_ context.Context, token string, limit, offset int) ([]music.SavedTrack, error) {
	f.calls++
	f.lastToken, f.lastLimit, f.lastOffset = token, limit, offset
	if f.err != nil {
		return nil, f.err
	}
	return f.liked, nil
}

func (f *fakeMusic) TopTracks(_ context.Context, token string, limit, offset int, timeRange string) ([]music.Track, error) {
	f.calls++
	f.lastToken, f.lastLimit, f.lastOffset, f.lastTimeRange = token, limit, offset, timeRange
	if f.err != nil {
		return nil, f.err
	}
	return f.top, nil
}

func (f *fakeMusic) SearchTracks(_ context.Context, token, query string, limit, offset int) ([]music.TrackSummary, error) {
	f.calls++
	f.lastToken, f.lastQuery, f.lastLimit, f.lastOffset = token, query, limit, offset
	if f.err != nil {
		return nil, f.err
	}
	return f.summaries, nil
}

func (f *fakeMusic) PlaylistTracks(_ context.Context, token, playlistID string, limit, offset int) ([]music.TrackSummary, error) {
	f.calls++
	f.lastToken, f.lastPlaylist, f.lastLimit, f.lastOffset = token, playlistID, limit, offset
	if f.err != nil {
		return nil, f.err
	}
	return f.summaries, nil
}
