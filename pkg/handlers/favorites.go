// This file contains the favorites endpoints. The owning user is resolved
// from the caller's bearer token via the provider profile, so favorites are
// keyed by the real account ID rather than anything the client claims.
package handlers

import (
	"database/sql"
	"errors"
	"net/http"
)

// AddFavorite saves a track to the caller's favorites. Duplicates are
// ignored by the store.
func (app *Application) AddFavorite(w http.ResponseWriter, r *http.Request) {
	tok, ok := requireBearer(w, r)
	if !ok {
		return
	}
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	var req struct {
		TrackID    string `json:"track_id"`
		TrackName  string `json:"track_name"`
		ArtistName string `json:"artist_name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TrackID == "" || req.TrackName == "" || req.ArtistName == "" {
		respondJSONError(w, http.StatusBadRequest, "track_id, track_name and artist_name are required")
		return
	}
	profile, err := app.Music.CurrentUser(r.Context(), tok)
	if err != nil {
		relayUpstream(w, "/api/favorites", err, "Failed fetching user data")
		return
	}
	if err := app.DB.AddFavorite(r.Context(), profile.ID, req.TrackID, req.TrackName, req.ArtistName); err != nil {
		log.WithError(err).Error("save favorite")
		respondJSONError(w, http.StatusInternalServerError, "failed to save favorite")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// RemoveFavorite deletes a track from the caller's favorites. The track is
// identified by the track_id query parameter.
func (app *Application) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	tok, ok := requireBearer(w, r)
	if !ok {
		return
	}
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	trackID := r.URL.Query().Get("track_id")
	if trackID == "" {
		respondJSONError(w, http.StatusBadRequest, "track_id is required")
		return
	}
	profile, err := app.Music.CurrentUser(r.Context(), tok)
	if err != nil {
		relayUpstream(w, "/api/favorites", err, "Failed fetching user data")
		return
	}
	if err := app.DB.DeleteFavorite(r.Context(), profile.ID, trackID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondJSONError(w, http.StatusNotFound, "favorite not found")
			return
		}
		log.WithError(err).Error("delete favorite")
		respondJSONError(w, http.StatusInternalServerError, "failed to delete favorite")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FavoritesJSON lists the caller's saved favorites.
func (app *Application) FavoritesJSON(w http.ResponseWriter, r *http.Request) {
	tok, ok := requireBearer(w, r)
	if !ok {
		return
	}
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	profile, err := app.Music.CurrentUser(r.Context(), tok)
	if err != nil {
		relayUpstream(w, "/api/favorites", err, "Failed fetching user data")
		return
	}
	favs, err := app.DB.ListFavorites(r.Context(), profile.ID)
	if err != nil {
		log.WithError(err).Error("load favorites")
		respondJSONError(w, http.StatusInternalServerError, "failed to load favorites")
		return
	}
	respondJSON(w, http.StatusOK, favs)
}
