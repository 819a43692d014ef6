package music

import libspotify "github.com/zmb3/spotify"

// TrackSummary is the reduced track projection returned by the search and
// playlist-track endpoints. It decouples the frontend from the full provider
// schema and trims the payload to the fields the UI renders.
type TrackSummary struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	URI        string          `json:"uri"`
	Artists    []ArtistSummary `json:"artists"`
	Album      AlbumSummary    `json:"album"`
	DurationMS int             `json:"duration_ms"`
}

// ArtistSummary carries only the artist name.
type ArtistSummary struct {
	Name string `json:"name"`
}

// AlbumSummary carries the album name and cover images.
type AlbumSummary struct {
	Name   string             `json:"name"`
	Images []libspotify.Image `json:"images"`
}

// Summarize reduces a full track to its projection. It is a pure function of
// the input. Tracks without artists or album images yield empty slices
// rather than nil so the JSON stays `[]` and the frontend never trips over
// missing fields.
func Summarize(t Track) TrackSummary {
	artists := make([]ArtistSummary, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, ArtistSummary{Name: a.Name})
	}
	images := t.Album.Images
	if images == nil {
		images = []libspotify.Image{}
	}
	return TrackSummary{
		ID:         string(t.ID),
		Name:       t.Name,
		URI:        string(t.URI),
		Artists:    artists,
		Album:      AlbumSummary{Name: t.Album.Name, Images: images},
		DurationMS: t.Duration,
	}
}

// SummarizeAll maps Summarize over a slice, returning an empty slice for
// empty input.
func SummarizeAll(tracks []Track) []TrackSummary {
	out := make([]TrackSummary, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, Summarize(t))
	}
	return out
}
