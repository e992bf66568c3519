// Copyright (c) 2026 Lyrica. All rights reserved.

package song

import "context"

type Repository interface {
	ListSongs(ctx context.Context) ([]*Song, error)
	GetSongByID(ctx context.Context, id string) (*Song, error)
	GetLyricByID(ctx context.Context, id string) (*Lyric, error)
	ListLyricsBySong(ctx context.Context, songID string) ([]Lyric, error)
	CreateSong(ctx context.Context, song *Song) error
	CreateLyric(ctx context.Context, lyric *Lyric) error
	// IncrementLikes atomically bumps the like counter and returns the
	// updated lyric.
	IncrementLikes(ctx context.Context, id string) (*Lyric, error)
	// DeleteSong removes a song and, via the FK cascade, its lyrics.
	DeleteSong(ctx context.Context, id string) error
}
