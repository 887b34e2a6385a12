package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for catalog store errors.
var (
	ErrNotFound         = errors.New("not found")
	ErrArtistNotFound   = fmt.Errorf("artist %w", ErrNotFound)
	ErrAlbumNotFound    = fmt.Errorf("album %w", ErrNotFound)
	ErrSongNotFound     = fmt.Errorf("song %w", ErrNotFound)
	ErrInvalidReference = errors.New("invalid reference")
	ErrInvalidSeed      = errors.New("invalid seed data")
)

// invalidReference marks a foreign key that points at nothing.
func invalidReference(missing error) error {
	return fmt.Errorf("%w: %w", ErrInvalidReference, missing)
}
