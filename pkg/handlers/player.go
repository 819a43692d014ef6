// This file exposes the shared player state over HTTP. The slot holds the
// track the user most recently started, so the persistent audio embed and
// the insights view render the same thing. Writes replace the whole triple;
// clearing means writing the empty triple.
package handlers

import (
	"net/http"

	"TrackPulse/pkg/player"
)

// PlayerJSON reads or replaces the shared player state. GET returns the
// current slot, PUT and POST replace it wholesale.
func (app *Application) PlayerJSON(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		respondJSON(w, http.StatusOK, app.Player.Get())
	case http.MethodPut, http.MethodPost:
		var st player.State
		if err := decodeJSON(r, &st); err != nil {
			respondJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		app.Player.Set(st)
		respondJSON(w, http.StatusOK, st)
	default:
		respondJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
