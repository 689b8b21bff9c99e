package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/aplaceintime/api/internal/client"
	"github.com/aplaceintime/api/internal/model"
)

const (
	geniusHitLimit = 5

	LyricsNotFoundMessage = "Lyrics not found for this track."
)

var (
	starredDisclaimer = regexp.MustCompile(`(?s)\*{7}.*?\*{7}`)
	licenseDisclaimer = regexp.MustCompile(`(?is)Unfortunately, we are not licensed.*`)
)

type GeniusAPI interface {
	IsConfigured() bool
	Search(ctx context.Context, query string) ([]client.GeniusHit, error)
}

type LyricsAPI interface {
	IsConfigured() bool
	Lyrics(ctx context.Context, track, artist string) (string, bool, error)
}

// LookupService searches Genius and fetches lyrics for existing songs
type LookupService struct {
	genius GeniusAPI
	lyrics LyricsAPI
}

func NewLookupService(genius GeniusAPI, lyrics LyricsAPI) *LookupService {
	return &LookupService{genius: genius, lyrics: lyrics}
}

// SearchGenius returns the top hits for query
func (s *LookupService) SearchGenius(ctx context.Context, query string) (*model.GeniusSearchResponse, error) {
	if !s.genius.IsConfigured() {
		return nil, client.ErrNotConfigured
	}

	hits, err := s.genius.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(hits) > geniusHitLimit {
		hits = hits[:geniusHitLimit]
	}

	out := make([]model.GeniusHit, 0, len(hits))
	for _, h := range hits {
		var hit model.GeniusHit
		if r := h.Result; r != nil {
			hit = model.GeniusHit{
				ID:           r.ID,
				Title:        r.Title,
				Artist:       r.PrimaryArtist.Name,
				URL:          r.URL,
				ThumbnailURL: r.SongArtImageThumbnailURL,
			}
		}
		out = append(out, hit)
	}
	return &model.GeniusSearchResponse{Hits: out}, nil
}

// Lyrics looks up lyrics and strips the proxy's licensing boilerplate
func (s *LookupService) Lyrics(ctx context.Context, track, artist string) (*model.LyricsLookupResponse, error) {
	if !s.lyrics.IsConfigured() {
		return nil, client.ErrNotConfigured
	}

	raw, found, err := s.lyrics.Lyrics(ctx, track, artist)
	if err != nil {
		return nil, err
	}
	if !found {
		return &model.LyricsLookupResponse{Message: LyricsNotFoundMessage}, nil
	}

	cleaned := CleanLyrics(raw)
	return &model.LyricsLookupResponse{Lyrics: &cleaned}, nil
}

// CleanLyrics removes ******* delimited notices and the trailing
// "not licensed" disclaimer.
func CleanLyrics(s string) string {
	s = starredDisclaimer.ReplaceAllString(s, "")
	s = licenseDisclaimer.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
