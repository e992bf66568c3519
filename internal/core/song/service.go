// Copyright (c) 2026 Lyrica. All rights reserved.

package song

import (
	"context"
	"log/slog"

	"github.com/lyricahq/lyrica/internal/platform/validate"
	"github.com/lyricahq/lyrica/pkg/uuid"
)

const maxTitleLength = 200

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListSongs(ctx context.Context) ([]*Song, error) {
	return service.repo.ListSongs(ctx)
}

// GetSong returns a song with its lyrics populated.
func (service *Service) GetSong(ctx context.Context, id string) (*Song, error) {
	song, err := service.repo.GetSongByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lyrics, err := service.repo.ListLyricsBySong(ctx, id)
	if err != nil {
		return nil, err
	}
	song.Lyrics = lyrics

	return song, nil
}

// Lyrics returns the lyrics of a song in contribution order.
func (service *Service) Lyrics(ctx context.Context, songID string) ([]Lyric, error) {
	return service.repo.ListLyricsBySong(ctx, songID)
}

func (service *Service) GetLyric(ctx context.Context, id string) (*Lyric, error) {
	return service.repo.GetLyricByID(ctx, id)
}

func (service *Service) AddSong(ctx context.Context, title string) (*Song, error) {
	validator := &validate.Validator{}
	if err := validator.Required("title", title).MaxLen("title", title, maxTitleLength).Err(); err != nil {
		return nil, err
	}

	song := &Song{
		ID:    uuid.New(),
		Title: title,
	}
	if err := service.repo.CreateSong(ctx, song); err != nil {
		return nil, err
	}

	return song, nil
}

// AddLyricToSong appends a lyric and returns the updated song, matching the
// read the client performs right after contributing.
func (service *Service) AddLyricToSong(ctx context.Context, songID, content string) (*Song, error) {
	validator := &validate.Validator{}
	if err := validator.Required("content", content).UUID("songId", songID).Err(); err != nil {
		return nil, err
	}

	lyric := &Lyric{
		ID:      uuid.New(),
		SongID:  songID,
		Content: content,
	}
	if err := service.repo.CreateLyric(ctx, lyric); err != nil {
		return nil, err
	}

	return service.GetSong(ctx, songID)
}

func (service *Service) LikeLyric(ctx context.Context, id string) (*Lyric, error) {
	return service.repo.IncrementLikes(ctx, id)
}

// DeleteSong removes the song and returns its last known state for the
// client's confirmation view.
func (service *Service) DeleteSong(ctx context.Context, id string) (*Song, error) {
	song, err := service.repo.GetSongByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := service.repo.DeleteSong(ctx, id); err != nil {
		return nil, err
	}

	service.logger.Info("song_deleted", slog.String("song_id", id))
	return song, nil
}
