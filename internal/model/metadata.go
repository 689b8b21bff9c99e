package model

// ArtistInfo is the artist card shown on the site
type ArtistInfo struct {
	Name        string        `json:"name"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	Genres      []string      `json:"genres"`
	ExternalURL string        `json:"externalUrl,omitempty"`
	TopTracks   []ArtistTrack `json:"topTracks"`
}

type ArtistTrack struct {
	Name          string `json:"name"`
	URL           string `json:"url,omitempty"`
	AlbumImageURL string `json:"albumImageUrl,omitempty"`
}

type TopSongsResponse struct {
	Tracks []TopSong `json:"tracks"`
}

type TopSong struct {
	Name          string `json:"name"`
	Artist        string `json:"artist"`
	URL           string `json:"url"`
	AlbumImageURL string `json:"albumImageUrl,omitempty"`
}

// GeniusSearchRequest is bound from the query string
type GeniusSearchRequest struct {
	Query string `query:"q" validate:"required"`
}

type GeniusHit struct {
	ID           int64  `json:"id,omitempty"`
	Title        string `json:"title,omitempty"`
	Artist       string `json:"artist,omitempty"`
	URL          string `json:"url,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

type GeniusSearchResponse struct {
	Hits []GeniusHit `json:"hits"`
}

// LyricsLookupRequest is bound from the query string
type LyricsLookupRequest struct {
	Track  string `query:"track" validate:"required"`
	Artist string `query:"artist" validate:"required"`
}

// LyricsLookupResponse has a nil Lyrics and a Message when nothing was found
type LyricsLookupResponse struct {
	Lyrics  *string `json:"lyrics"`
	Message string  `json:"message,omitempty"`
}
