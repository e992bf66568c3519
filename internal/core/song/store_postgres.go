// Copyright (c) 2026 Lyrica. All rights reserved.

package song

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lyricahq/lyrica/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) ListSongs(ctx context.Context) ([]*Song, error) {
	const query = `
		SELECT id, title, created_at
		FROM songs
		ORDER BY created_at`

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "Song")
	}
	defer rows.Close()

	songs := make([]*Song, 0)
	for rows.Next() {
		song := &Song{}
		if err := rows.Scan(&song.ID, &song.Title, &song.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "Song")
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Song")
	}

	return songs, nil
}

func (repository *PostgresRepository) GetSongByID(ctx context.Context, id string) (*Song, error) {
	const query = `
		SELECT id, title, created_at
		FROM songs
		WHERE id = $1`

	song := &Song{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(&song.ID, &song.Title, &song.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "Song")
	}

	return song, nil
}

func (repository *PostgresRepository) GetLyricByID(ctx context.Context, id string) (*Lyric, error) {
	const query = `
		SELECT id, song_id, content, likes, created_at
		FROM lyrics
		WHERE id = $1`

	lyric := &Lyric{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&lyric.ID,
		&lyric.SongID,
		&lyric.Content,
		&lyric.Likes,
		&lyric.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Lyric")
	}

	return lyric, nil
}

func (repository *PostgresRepository) ListLyricsBySong(ctx context.Context, songID string) ([]Lyric, error) {
	const query = `
		SELECT id, song_id, content, likes, created_at
		FROM lyrics
		WHERE song_id = $1
		ORDER BY created_at`

	rows, err := repository.pool.Query(ctx, query, songID)
	if err != nil {
		return nil, dberr.Wrap(err, "Lyric")
	}
	defer rows.Close()

	lyrics, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Lyric, error) {
		var lyric Lyric
		err := row.Scan(&lyric.ID, &lyric.SongID, &lyric.Content, &lyric.Likes, &lyric.CreatedAt)
		return lyric, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Lyric")
	}

	return lyrics, nil
}

func (repository *PostgresRepository) CreateSong(ctx context.Context, song *Song) error {
	const query = `
		INSERT INTO songs (id, title, created_at)
		VALUES ($1, $2, $3)`

	if song.CreatedAt.IsZero() {
		song.CreatedAt = time.Now().UTC()
	}

	if _, err := repository.pool.Exec(ctx, query, song.ID, song.Title, song.CreatedAt); err != nil {
		return dberr.Wrap(err, "Song")
	}

	return nil
}

func (repository *PostgresRepository) CreateLyric(ctx context.Context, lyric *Lyric) error {
	const query = `
		INSERT INTO lyrics (id, song_id, content, likes, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if lyric.CreatedAt.IsZero() {
		lyric.CreatedAt = time.Now().UTC()
	}

	if _, err := repository.pool.Exec(ctx, query, lyric.ID, lyric.SongID, lyric.Content, lyric.Likes, lyric.CreatedAt); err != nil {
		return dberr.Wrap(err, "Lyric")
	}

	return nil
}

// IncrementLikes bumps the counter inside the database so concurrent likes
// never lose updates.
func (repository *PostgresRepository) IncrementLikes(ctx context.Context, id string) (*Lyric, error) {
	const query = `
		UPDATE lyrics
		SET likes = likes + 1
		WHERE id = $1
		RETURNING id, song_id, content, likes, created_at`

	lyric := &Lyric{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&lyric.ID,
		&lyric.SongID,
		&lyric.Content,
		&lyric.Likes,
		&lyric.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Lyric")
	}

	return lyric, nil
}

func (repository *PostgresRepository) DeleteSong(ctx context.Context, id string) error {
	const query = `DELETE FROM songs WHERE id = $1`

	if _, err := repository.pool.Exec(ctx, query, id); err != nil {
		return dberr.Wrap(err, "Song")
	}

	return nil
}
