package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/aplaceintime/api/internal/client"
	"github.com/aplaceintime/api/internal/config"
	"github.com/aplaceintime/api/internal/logger"
	"github.com/aplaceintime/api/internal/model"
)

const (
	artistTopTracksLimit = 3
	topSongsLimit        = 5
	// Spotify lists album images largest first; the third is the thumbnail.
	thumbnailImageIndex = 2
)

// SpotifyAPI is the subset of the Spotify client the service needs
type SpotifyAPI interface {
	IsConfigured() bool
	Artist(ctx context.Context, artistID string) (*client.SpotifyArtist, error)
	ArtistTopTracks(ctx context.Context, artistID, market string, limit int) ([]client.SpotifyTrack, error)
	PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]*client.SpotifyTrack, error)
}

// SpotifyService builds the artist card and the global top songs list
type SpotifyService struct {
	api        SpotifyAPI
	artistID   string
	playlistID string
	market     string
}

func NewSpotifyService(api SpotifyAPI, cfg *config.SpotifyConfig) *SpotifyService {
	return &SpotifyService{
		api:        api,
		artistID:   cfg.ArtistID,
		playlistID: cfg.PlaylistID,
		market:     cfg.Market,
	}
}

// ArtistInfo fetches the artist and their top tracks concurrently. A failed
// top-tracks call leaves the list empty; a failed artist call fails the lot.
func (s *SpotifyService) ArtistInfo(ctx context.Context) (*model.ArtistInfo, error) {
	if !s.api.IsConfigured() {
		return nil, client.ErrNotConfigured
	}

	var (
		artist *client.SpotifyArtist
		tracks []client.SpotifyTrack
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.api.Artist(gctx, s.artistID)
		if err != nil {
			return err
		}
		artist = a
		return nil
	})
	g.Go(func() error {
		t, err := s.api.ArtistTopTracks(gctx, s.artistID, s.market, artistTopTracksLimit)
		if err != nil {
			logger.Warn("Spotify top tracks unavailable, continuing without them", logger.Fields{
				"artist_id": s.artistID,
				"error":     err.Error(),
			})
			return nil
		}
		tracks = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	info := &model.ArtistInfo{
		Name:        artist.Name,
		Genres:      artist.Genres,
		ExternalURL: artist.ExternalURLs.Spotify,
		TopTracks:   make([]model.ArtistTrack, 0, len(tracks)),
	}
	if info.Genres == nil {
		info.Genres = []string{}
	}
	if len(artist.Images) > 0 {
		info.ImageURL = artist.Images[0].URL
	}
	for i := range tracks {
		info.TopTracks = append(info.TopTracks, model.ArtistTrack{
			Name:          tracks[i].Name,
			URL:           tracks[i].ExternalURLs.Spotify,
			AlbumImageURL: tracks[i].ImageURL(thumbnailImageIndex),
		})
	}
	return info, nil
}

// TopSongs returns the head of the global top playlist, skipping entries
// without a name, artist or link.
func (s *SpotifyService) TopSongs(ctx context.Context) (*model.TopSongsResponse, error) {
	if !s.api.IsConfigured() {
		return nil, client.ErrNotConfigured
	}

	items, err := s.api.PlaylistTracks(ctx, s.playlistID, topSongsLimit)
	if err != nil {
		return nil, err
	}

	songs := make([]model.TopSong, 0, len(items))
	for _, t := range items {
		if t == nil {
			continue
		}
		names := make([]string, 0, len(t.Artists))
		for _, a := range t.Artists {
			names = append(names, a.Name)
		}
		song := model.TopSong{
			Name:          t.Name,
			Artist:        strings.Join(names, ", "),
			URL:           t.ExternalURLs.Spotify,
			AlbumImageURL: t.ImageURL(thumbnailImageIndex),
		}
		if song.Name == "" || song.Artist == "" || song.URL == "" {
			continue
		}
		songs = append(songs, song)
	}
	return &model.TopSongsResponse{Tracks: songs}, nil
}
