// This file adds small helpers for encoding and decoding JSON bodies.
//
// decodeJSON reads the request body into v, enforcing a reasonable limit and
// rejecting unknown fields. respondJSON and respondJSONError write the
// uniform response shapes used by every endpoint; errors always carry a
// JSON body with an `error` field so the frontend can display them.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// errEmptyBody signals that the request carried no JSON body at all. Some
// endpoints (refresh) treat that as a valid input.
var errEmptyBody = errors.New("empty body")

// decodeJSON attempts to decode the request body into the provided
// destination. The body is limited to 1MB to guard against malicious
// requests. Unknown fields cause an error so clients cannot send unexpected
// data.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1MB
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errEmptyBody
		}
		return err
	}
	if dec.More() {
		return errors.New("extra data in request body")
	}
	return nil
}

// respondJSON writes v with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("encode response")
	}
}

// respondJSONError writes the uniform error envelope.
func respondJSONError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondRawJSON relays an upstream body verbatim.
func respondRawJSON(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.WithError(err).Error("write response")
	}
}
