// This file groups the OAuth endpoints: login, callback and token refresh.
// CSRF protection follows the authorization-code state parameter scheme: a
// random value is HMAC-signed into a session cookie on login and must come
// back unchanged on the provider's callback before any code exchange
// happens. OAuth errors are reported to the browser as fragment parameters
// on the redirect back to the frontend so tokens and errors never appear in
// a query string.
package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// stateCookie carries the signed anti-CSRF state between login and callback.
const stateCookie = "spotify_auth_state"

// signValue computes an HMAC signature for value and appends it using the
// format value|signature. The signature is base64 URL encoded so it can be
// safely stored in cookies.
func signValue(value string, key []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(value))
	sig := mac.Sum(nil)
	return value + "|" + base64.RawURLEncoding.EncodeToString(sig)
}

// verifyValue checks the HMAC signature appended to signed. It returns the
// original value and true when the signature matches the provided key.
func verifyValue(signed string, key []byte) (string, bool) {
	parts := strings.Split(signed, "|")
	if len(parts) != 2 {
		return "", false
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(parts[0]))
	expected := mac.Sum(nil)
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil || !hmac.Equal(expected, sig) {
		return "", false
	}
	return parts[0], true
}

// redirectFragment sends the browser back to the frontend with the given
// values encoded in the URL fragment. Fragments are never sent to servers,
// keeping tokens out of logs and referrer headers.
func (app *Application) redirectFragment(w http.ResponseWriter, r *http.Request, vals url.Values) {
	http.Redirect(w, r, app.FrontendURL+"/#"+vals.Encode(), http.StatusFound)
}

// expiresIn extracts the provider-reported expires_in from a token,
// falling back to the difference between the token expiry and now.
func expiresIn(tok *oauth2.Token, now time.Time) int {
	if v, ok := tok.Extra("expires_in").(float64); ok && v > 0 {
		return int(v)
	}
	if tok.Expiry.IsZero() {
		return 0
	}
	return int(tok.Expiry.Sub(now).Round(time.Second) / time.Second)
}

// Login begins the OAuth flow: it generates a fresh state value, stores it
// signed in a session cookie and redirects the browser to the provider's
// authorization page.
func (app *Application) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    signValue(state, app.SignKey),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, app.OAuth.AuthCodeURL(state), http.StatusFound)
}

// OAuthCallback completes the flow. The state parameter must exactly match
// the signed cookie value or the code exchange is never attempted and the
// browser is sent back with an error fragment. On success the token store
// is replaced and the access token travels back to the frontend in the
// fragment.
func (app *Application) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	c, err := r.Cookie(stateCookie)
	if err != nil {
		app.redirectFragment(w, r, url.Values{"error": {"state mismatch"}})
		return
	}
	stored, ok := verifyValue(c.Value, app.SignKey)
	if !ok || state == "" || state != stored {
		app.redirectFragment(w, r, url.Values{"error": {"state mismatch"}})
		return
	}
	// The state is single use; drop the cookie before exchanging.
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/", MaxAge: -1})

	tok, err := app.OAuth.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		log.WithError(err).Error("authorization code exchange failed")
		app.redirectFragment(w, r, url.Values{"error": {"invalid token"}})
		return
	}
	app.Tokens.Replace(tok.AccessToken, tok.RefreshToken, tok.Expiry)
	log.Info("tokens obtained")

	app.redirectFragment(w, r, url.Values{
		"access_token": {tok.AccessToken},
		"expires_in":   {strconv.Itoa(expiresIn(tok, app.now()))},
	})
}

// RefreshToken exchanges a refresh token for a new access token. A token
// supplied in the request body wins over the internally stored one; with
// neither available the request fails without contacting the provider. Only
// the internal-token path mutates the store: success updates access token
// and expiry, failure clears them while deliberately keeping the reusable
// refresh token so the next refresh can still succeed.
func (app *Application) RefreshToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	internal := req.RefreshToken == ""
	refresh := req.RefreshToken
	if internal {
		refresh = app.Tokens.Get().RefreshToken
	}
	if refresh == "" {
		respondJSONError(w, http.StatusBadRequest, "Refresh token not provided and not stored")
		return
	}

	src := app.OAuth.TokenSource(r.Context(), &oauth2.Token{RefreshToken: refresh})
	tok, err := src.Token()
	if err != nil {
		log.WithError(err).Error("token refresh failed")
		if internal {
			app.Tokens.ClearAccess()
		}
		status := http.StatusInternalServerError
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			status = re.Response.StatusCode
		}
		respondJSONError(w, status, "Failed to refresh token")
		return
	}
	if internal {
		app.Tokens.UpdateAccess(tok.AccessToken, tok.Expiry)
		log.Info("stored access token refreshed")
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"access_token": tok.AccessToken,
		"expires_in":   expiresIn(tok, app.now()),
	})
}
