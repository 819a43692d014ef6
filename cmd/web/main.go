// Command web initializes the TrackPulse backend and starts the HTTP server.
// Configuration is provided via environment variables: Spotify credentials
// for the OAuth flow, API keys for the content proxies and the frontend base
// URL used as the redirect target. The server exposes a JSON API only; the
// browser frontend is served separately.

package main

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	libspotify "github.com/zmb3/spotify"
	"golang.org/x/oauth2"

	"TrackPulse/pkg/db"
	"TrackPulse/pkg/gifs"
	"TrackPulse/pkg/handlers"
	"TrackPulse/pkg/news"
	"TrackPulse/pkg/player"
	"TrackPulse/pkg/spotify"
	"TrackPulse/pkg/token"
	"TrackPulse/pkg/weather"
	"TrackPulse/pkg/websearch"
)

// main configures application dependencies and starts the HTTP server.
func main() {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Spotify credentials are required; without them neither the login flow
	// nor the refresh endpoint can work.
	clientID := os.Getenv("SPOTIFY_CLIENT_ID")
	clientSecret := os.Getenv("SPOTIFY_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		log.Fatal("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET must be set")
	}
	// SPOTIFY_REDIRECT_URL must match the callback configured in the
	// Spotify developer dashboard. When unset we fall back to the local
	// development address.
	redirectURL := os.Getenv("SPOTIFY_REDIRECT_URL")
	if redirectURL == "" {
		redirectURL = "http://localhost:5000/callback"
	}
	frontendURI := os.Getenv("FRONTEND_URI")
	if frontendURI == "" {
		frontendURI = "http://localhost:5173"
	}
	signingKey := os.Getenv("SIGNING_KEY")
	if signingKey == "" {
		log.Fatal("SIGNING_KEY must be set")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			libspotify.ScopeUserReadPrivate,
			libspotify.ScopeUserReadEmail,
			libspotify.ScopeUserLibraryRead,
			libspotify.ScopePlaylistReadPrivate,
			libspotify.ScopePlaylistReadCollaborative,
			libspotify.ScopeUserTopRead,
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:   libspotify.AuthURL,
			TokenURL:  libspotify.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	// DATABASE_PATH allows the SQLite file to be customised. It defaults to
	// a file named trackpulse.db in the working directory.
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "trackpulse.db"
	}
	database, err := db.New(dbPath)
	if err != nil {
		log.Fatalf("db init: %v", err)
	}
	defer database.Close()

	app := &handlers.Application{
		Music:       spotify.NewService(),
		OAuth:       oauthCfg,
		Tokens:      token.NewStore(),
		Player:      player.NewStore(),
		DB:          database,
		FrontendURL: frontendURI,
		SignKey:     []byte(signingKey),
	}

	// Content API clients are only constructed when their key is present;
	// the handlers report a configuration error for the missing ones.
	if key := os.Getenv("OPENWEATHER_API_KEY"); key != "" {
		app.Weather = &weather.Client{Key: key}
	} else {
		log.Warn("OPENWEATHER_API_KEY not set; /api/weather disabled")
	}
	if key := os.Getenv("NEWS_API_KEY"); key != "" {
		app.News = &news.Client{Key: key}
	} else {
		log.Warn("NEWS_API_KEY not set; /api/news disabled")
	}
	if key := os.Getenv("GIPHY_API_KEY"); key != "" {
		app.Gifs = &gifs.Client{Key: key}
	} else {
		log.Warn("GIPHY_API_KEY not set; /api/gifs disabled")
	}
	searchKey := os.Getenv("GOOGLE_SEARCH_API_KEY")
	engineID := os.Getenv("GOOGLE_SEARCH_ENGINE_ID")
	if searchKey != "" && engineID != "" {
		app.Search = &websearch.Client{Key: searchKey, EngineID: engineID}
	} else {
		log.Warn("GOOGLE_SEARCH_API_KEY or GOOGLE_SEARCH_ENGINE_ID not set; /api/search disabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.WithField("addr", ":"+port).Info("backend server running")
	if err := http.ListenAndServe(":"+port, routes(app)); err != nil {
		log.Fatalf("http server error: %v", err)
	}
}

// routes wires every endpoint onto a mux and wraps it in the middleware
// chain: metrics outermost, then security headers and CORS for the frontend
// origin.
func routes(app *handlers.Application) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", app.Login)
	mux.HandleFunc("/callback", app.OAuthCallback)
	mux.HandleFunc("/refresh_token", app.RefreshToken)
	mux.HandleFunc("/user", app.User)
	mux.HandleFunc("/playlists", app.Playlists)
	mux.HandleFunc("/playlists/", app.PlaylistTracks)
	mux.HandleFunc("/liked-songs", app.LikedSongs)
	mux.HandleFunc("/top-tracks", app.TopTracks)
	mux.HandleFunc("/search", app.SearchTracks)
	mux.HandleFunc("/api/weather", app.WeatherJSON)
	mux.HandleFunc("/api/news", app.NewsJSON)
	mux.HandleFunc("/api/gifs", app.GifJSON)
	mux.HandleFunc("/api/search", app.WebSearchJSON)
	mux.HandleFunc("/api/search-lyrics", app.LyricsSearchJSON)
	mux.HandleFunc("/api/player", app.PlayerJSON)
	mux.HandleFunc("/api/favorites", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			app.AddFavorite(w, r)
		case http.MethodDelete:
			app.RemoveFavorite(w, r)
		default:
			app.FavoritesJSON(w, r)
		}
	})
	mux.Handle("/metrics", promhttp.Handler())

	return handlers.Metrics(handlers.SecurityHeaders(handlers.CORS(app.FrontendURL)(mux)))
}
