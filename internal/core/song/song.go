// Copyright (c) 2026 Lyrica. All rights reserved.

// Package song implements the song catalogue: songs and the lyrics attached
// to them, including the collaborative "like" counter on each lyric.
package song

import "time"

// Song is a titled entry in the catalogue.
type Song struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"-"`

	// Lyrics contains the child lyrics, populated on single-song reads.
	Lyrics []Lyric `json:"lyrics,omitempty"`
}

// Lyric is a single contributed line for a song.
type Lyric struct {
	ID        string    `json:"id"`
	SongID    string    `json:"song_id"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"-"`
}
