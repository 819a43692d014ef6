// Package spotify implements music.Service on top of the official Spotify
// client library. A fresh client is built for every call from the bearer
// token the browser supplied; the server holds no provider session of its
// own for proxy requests.
//
// The wrapped library does not accept a context so cancellation is checked
// explicitly before each call. Provider errors are converted to
// *upstream.Error so handlers can relay the original HTTP status.
package spotify

import (
	"context"
	"errors"
	"fmt"

	libspotify "github.com/zmb3/spotify"
	"golang.org/x/oauth2"

	"TrackPulse/pkg/music"
	"TrackPulse/pkg/upstream"
)

// playlistTrackFields mirrors the projection requested from the provider so
// the response carries only what the reshaping keeps.
const playlistTrackFields = "items(track(id,name,uri,artists(name),album(name,images),duration_ms))"

// api is the subset of the spotify.Client used by this package. It allows
// the concrete client to be replaced in tests.
type api interface {
	CurrentUser() (*libspotify.PrivateUser, error)
	CurrentUsersPlaylistsOpt(opt *libspotify.Options) (*libspotify.SimplePlaylistPage, error)
	CurrentUsersTracksOpt(opt *libspotify.Options) (*libspotify.SavedTrackPage, error)
	CurrentUsersTopTracksOpt(opt *libspotify.Options) (*libspotify.FullTrackPage, error)
	SearchOpt(query string, t libspotify.SearchType, opt *libspotify.Options) (*libspotify.SearchResult, error)
	GetPlaylistTracksOpt(playlistID libspotify.ID, opt *libspotify.Options, fields string) (*libspotify.PlaylistTrackPage, error)
}

// Service talks to the Spotify Web API with caller-supplied bearer tokens.
type Service struct {
	// newClient builds an API client from a bearer token. Tests replace it
	// with a fake.
	newClient func(token string) api
}

var _ music.Service = (*Service)(nil)

// NewService returns a Service using the real Spotify client.
func NewService() *Service {
	return &Service{newClient: func(token string) api {
		c := libspotify.Authenticator{}.NewClient(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		return &c
	}}
}

// wrapErr converts the library's error type into an upstream.Error carrying
// the provider status. Other failures (network, decode) pass through wrapped.
func wrapErr(op string, err error) error {
	var se libspotify.Error
	if errors.As(err, &se) {
		return &upstream.Error{Status: se.Status, Message: se.Message}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// CurrentUser fetches the profile of the token's owner.
func (s *Service) CurrentUser(ctx context.Context, token string) (*music.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	user, err := s.newClient(token).CurrentUser()
	if err != nil {
		return nil, wrapErr("current user", err)
	}
	return user, nil
}

// Playlists lists the user's playlists.
func (s *Service) Playlists(ctx context.Context, token string, limit int) ([]music.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opt := &libspotify.Options{Limit: &limit}
	page, err := s.newClient(token).CurrentUsersPlaylistsOpt(opt)
	if err != nil {
		return nil, wrapErr("playlists", err)
	}
	return page.Playlists, nil
}

// LikedSongs lists the user's saved tracks.
func (s *Service) LikedSongs(ctx context.Context, token string, limit, offset int) ([]music.SavedTrack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opt := &libspotify.Options{Limit: &limit, Offset: &offset}
	page, err := s.newClient(token).CurrentUsersTracksOpt(opt)
	if err != nil {
		return nil, wrapErr("liked songs", err)
	}
	return page.Tracks, nil
}

// TopTracks lists the user's most played tracks over timeRange.
func (s *Service) TopTracks(ctx context.Context, token string, limit, offset int, timeRange string) ([]music.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opt := &libspotify.Options{Limit: &limit, Offset: &offset, Timerange: &timeRange}
	page, err := s.newClient(token).CurrentUsersTopTracksOpt(opt)
	if err != nil {
		return nil, wrapErr("top tracks", err)
	}
	return page.Tracks, nil
}

// SearchTracks runs a track search and reshapes the results.
func (s *Service) SearchTracks(ctx context.Context, token, query string, limit, offset int) ([]music.TrackSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opt := &libspotify.Options{Limit: &limit, Offset: &offset}
	res, err := s.newClient(token).SearchOpt(query, libspotify.SearchTypeTrack, opt)
	if err != nil {
		return nil, wrapErr("search", err)
	}
	if res.Tracks == nil {
		return []music.TrackSummary{}, nil
	}
	return music.SummarizeAll(res.Tracks.Tracks), nil
}

// PlaylistTracks lists a playlist's tracks in reshaped form.
func (s *Service) PlaylistTracks(ctx context.Context, token, playlistID string, limit, offset int) ([]music.TrackSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opt := &libspotify.Options{Limit: &limit, Offset: &offset}
	page, err := s.newClient(token).GetPlaylistTracksOpt(libspotify.ID(playlistID), opt, playlistTrackFields)
	if err != nil {
		return nil, wrapErr("playlist tracks", err)
	}
	tracks := make([]music.Track, 0, len(page.Tracks))
	for _, item := range page.Tracks {
		tracks = append(tracks, item.Track)
	}
	return music.SummarizeAll(tracks), nil
}
