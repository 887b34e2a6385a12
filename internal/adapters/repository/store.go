// Package repository holds the catalog collections and their id counters.
package repository

import (
	"context"
	"time"

	"github.com/okian/discography/internal/domain/model"
)

// Counts reports one number per collection.
type Counts struct {
	Artists int `json:"artists"`
	Albums  int `json:"albums"`
	Songs   int `json:"songs"`
}

// Store provides read/write access to the catalog state.
//
// Lookups by id return a copy of the stored entity, or an error wrapping
// ErrNotFound. Writes that carry a foreign key validate it in the same
// critical section as the write; a failed validation returns an error
// wrapping ErrInvalidReference and leaves the entity untouched.
type Store interface {
	Artists(ctx context.Context) []model.Artist
	Artist(ctx context.Context, id int) (model.Artist, error)
	InsertArtist(ctx context.Context, name string, at time.Time) (model.Artist, error)
	UpdateArtist(ctx context.Context, id int, patch model.ArtistPatch, at time.Time) (model.Artist, error)
	DeleteArtist(ctx context.Context, id int) error

	Albums(ctx context.Context) []model.Album
	AlbumsByArtist(ctx context.Context, artistID int) []model.Album
	Album(ctx context.Context, id int) (model.Album, error)
	// InsertAlbum returns ErrArtistNotFound when artistID is unknown.
	InsertAlbum(ctx context.Context, artistID int, name string, at time.Time) (model.Album, error)
	UpdateAlbum(ctx context.Context, id int, patch model.AlbumPatch, at time.Time) (model.Album, error)
	DeleteAlbum(ctx context.Context, id int) error

	Songs(ctx context.Context) []model.Song
	SongsByAlbum(ctx context.Context, albumIDs ...int) []model.Song
	SongsByTrackNumber(ctx context.Context, trackNumber int) []model.Song
	Song(ctx context.Context, id int) (model.Song, error)
	// InsertSong returns ErrAlbumNotFound when albumID is unknown.
	InsertSong(ctx context.Context, albumID int, song model.NewSong, at time.Time) (model.Song, error)
	UpdateSong(ctx context.Context, id int, patch model.SongPatch, at time.Time) (model.Song, error)
	DeleteSong(ctx context.Context, id int) error

	// Exists reports whether an entity of kind with id is stored.
	Exists(ctx context.Context, kind model.Kind, id int) bool
	// Counts returns the collection sizes.
	Counts(ctx context.Context) Counts
	// NextIDs returns the ids the next creations will receive.
	NextIDs(ctx context.Context) Counts
}
