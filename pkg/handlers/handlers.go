// Package handlers contains the HTTP handlers for TrackPulse. The
// Application struct bundles the dependencies the handlers need: the music
// service used for authenticated proxy calls, the OAuth configuration and
// token store for the login flow, the content API clients, and the shared
// player state. Everything is injected by cmd/web so tests can substitute
// fakes.
package handlers

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"TrackPulse/pkg/db"
	"TrackPulse/pkg/gifs"
	"TrackPulse/pkg/music"
	"TrackPulse/pkg/news"
	"TrackPulse/pkg/player"
	"TrackPulse/pkg/token"
	"TrackPulse/pkg/weather"
	"TrackPulse/pkg/websearch"
)

// log is the package logger. cmd/web configures the standard logrus logger
// so all packages share formatting and level.
var log = logrus.StandardLogger()

// Application holds the dependencies shared by the route handlers. Content
// API clients are nil when their key is not configured; the corresponding
// endpoint then reports a configuration error without calling out.
type Application struct {
	Music  music.Service
	OAuth  *oauth2.Config
	Tokens *token.Store
	Player *player.Store
	DB     *db.DB

	Weather *weather.Client
	News    *news.Client
	Gifs    *gifs.Client
	Search  *websearch.Client

	// FrontendURL is the browser application's base URL, the redirect
	// target after login, callback and OAuth errors.
	FrontendURL string
	// SignKey signs the OAuth state cookie.
	SignKey []byte

	// Now is the clock used for token expiry bookkeeping. Tests may pin it;
	// nil means time.Now.
	Now func() time.Time
}

func (app *Application) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}
