// Package music defines the interface between the HTTP handlers and the
// streaming provider. The concrete implementation wraps Spotify; tests use
// fakes. Every call carries the bearer token supplied by the browser, the
// server never substitutes its own token for proxy requests.
//
// The list types alias the underlying spotify library structs so responses
// keep the field names the frontend already understands.
package music

import (
	"context"

	libspotify "github.com/zmb3/spotify"
)

// Profile mirrors the Spotify /me payload.
type Profile = libspotify.PrivateUser

// Playlist is one entry of the user's playlist listing.
type Playlist = libspotify.SimplePlaylist

// SavedTrack is one entry of the user's liked songs.
type SavedTrack = libspotify.SavedTrack

// Track is a full provider track object before reshaping.
type Track = libspotify.FullTrack

// Service exposes the provider operations used by the proxy layer. The
// token argument is the raw bearer token from the incoming Authorization
// header. Implementations must return an *upstream.Error for non-2xx
// provider responses so handlers can relay the status.
type Service interface {
	// CurrentUser returns the profile of the token's owner.
	CurrentUser(ctx context.Context, token string) (*Profile, error)

	// Playlists lists the user's playlists.
	Playlists(ctx context.Context, token string, limit int) ([]Playlist, error)

	// LikedSongs lists the user's saved tracks.
	LikedSongs(ctx context.Context, token string, limit, offset int) ([]SavedTrack, error)

	// TopTracks lists the user's most played tracks for the given
	// time range ("short_term", "medium_term" or "long_term").
	TopTracks(ctx context.Context, token string, limit, offset int, timeRange string) ([]Track, error)

	// SearchTracks runs a track search and returns reshaped results.
	SearchTracks(ctx context.Context, token, query string, limit, offset int) ([]TrackSummary, error)

	// PlaylistTracks lists a playlist's tracks in reshaped form.
	PlaylistTracks(ctx context.Context, token, playlistID string, limit, offset int) ([]TrackSummary, error)
}
