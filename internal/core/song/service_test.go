// Copyright (c) 2026 Lyrica. All rights reserved.

package song_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyricahq/lyrica/internal/core/song"
	"github.com/lyricahq/lyrica/internal/platform/apperr"
)

type fakeRepository struct {
	songs  map[string]*song.Song
	lyrics map[string]*song.Lyric
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{songs: map[string]*song.Song{}, lyrics: map[string]*song.Lyric{}}
}

func (r *fakeRepository) ListSongs(ctx context.Context) ([]*song.Song, error) {
	out := make([]*song.Song, 0, len(r.songs))
	for _, s := range r.songs {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRepository) GetSongByID(ctx context.Context, id string) (*song.Song, error) {
	s, ok := r.songs[id]
	if !ok {
		return nil, apperr.NotFound("song")
	}
	copied := *s
	return &copied, nil
}

func (r *fakeRepository) GetLyricByID(ctx context.Context, id string) (*song.Lyric, error) {
	l, ok := r.lyrics[id]
	if !ok {
		return nil, apperr.NotFound("lyric")
	}
	copied := *l
	return &copied, nil
}

func (r *fakeRepository) ListLyricsBySong(ctx context.Context, songID string) ([]song.Lyric, error) {
	var out []song.Lyric
	for _, l := range r.lyrics {
		if l.SongID == songID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeRepository) CreateSong(ctx context.Context, s *song.Song) error {
	copied := *s
	r.songs[s.ID] = &copied
	return nil
}

func (r *fakeRepository) CreateLyric(ctx context.Context, l *song.Lyric) error {
	if _, ok := r.songs[l.SongID]; !ok {
		return apperr.NotFound("song")
	}
	copied := *l
	r.lyrics[l.ID] = &copied
	return nil
}

func (r *fakeRepository) IncrementLikes(ctx context.Context, id string) (*song.Lyric, error) {
	l, ok := r.lyrics[id]
	if !ok {
		return nil, apperr.NotFound("lyric")
	}
	l.Likes++
	copied := *l
	return &copied, nil
}

func (r *fakeRepository) DeleteSong(ctx context.Context, id string) error {
	if _, ok := r.songs[id]; !ok {
		return apperr.NotFound("song")
	}
	delete(r.songs, id)
	for lyricID, l := range r.lyrics {
		if l.SongID == id {
			delete(r.lyrics, lyricID)
		}
	}
	return nil
}

func newSongService() (*song.Service, *fakeRepository) {
	repo := newFakeRepository()
	return song.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestService_AddSongAndGet(t *testing.T) {
	service, _ := newSongService()
	ctx := context.Background()

	created, err := service.AddSong(ctx, "Midnight Draft")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	found, err := service.GetSong(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Midnight Draft", found.Title)
	assert.Empty(t, found.Lyrics)
}

func TestService_AddSongRejectsEmptyTitle(t *testing.T) {
	service, _ := newSongService()

	_, err := service.AddSong(context.Background(), "")

	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

func TestService_AddLyricReturnsUpdatedSong(t *testing.T) {
	service, _ := newSongService()
	ctx := context.Background()

	created, err := service.AddSong(ctx, "Echoes")
	require.NoError(t, err)

	updated, err := service.AddLyricToSong(ctx, created.ID, "first line")
	require.NoError(t, err)

	require.Len(t, updated.Lyrics, 1)
	assert.Equal(t, "first line", updated.Lyrics[0].Content)
	assert.Zero(t, updated.Lyrics[0].Likes)
}

func TestService_AddLyricValidatesSongID(t *testing.T) {
	service, _ := newSongService()

	_, err := service.AddLyricToSong(context.Background(), "not-a-uuid", "line")

	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

func TestService_LikeLyricIncrements(t *testing.T) {
	service, _ := newSongService()
	ctx := context.Background()

	created, err := service.AddSong(ctx, "Echoes")
	require.NoError(t, err)
	updated, err := service.AddLyricToSong(ctx, created.ID, "line")
	require.NoError(t, err)
	lyricID := updated.Lyrics[0].ID

	first, err := service.LikeLyric(ctx, lyricID)
	require.NoError(t, err)
	second, err := service.LikeLyric(ctx, lyricID)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Likes)
	assert.Equal(t, 2, second.Likes)
}

func TestService_DeleteSongReturnsLastState(t *testing.T) {
	service, repo := newSongService()
	ctx := context.Background()

	created, err := service.AddSong(ctx, "Ephemeral")
	require.NoError(t, err)
	_, err = service.AddLyricToSong(ctx, created.ID, "gone soon")
	require.NoError(t, err)

	removed, err := service.DeleteSong(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ephemeral", removed.Title)

	_, err = service.GetSong(ctx, created.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	assert.Empty(t, repo.lyrics)
}

func TestService_GetLyricUnknown(t *testing.T) {
	service, _ := newSongService()

	_, err := service.GetLyric(context.Background(), "11111111-1111-7111-8111-111111111111")

	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}
