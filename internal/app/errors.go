package service

import (
	"errors"
	"fmt"
)

// Sentinel kinds for catalog errors.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidReference = errors.New("invalid reference")
	ErrInternal         = errors.New("internal error")
)

// Client-facing messages.
const (
	MsgArtistNotFound     = "Artist not found"
	MsgAlbumNotFound      = "Album not found"
	MsgSongNotFound       = "Song not found"
	MsgNoAlbumsFound      = "No albums found"
	MsgNoSongsFound       = "No songs found"
	MsgSongsNotFound      = "Songs not found"
	MsgAlbumArtistMissing = "Cannot assign album to an artist that does not exist"
	MsgSongAlbumMissing   = "Cannot assign song to an album that does not exist"
)

// Error is returned by every failing catalog operation. Message is safe to
// show to API clients.
type Error struct {
	Op      string
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func notFound(op, msg string, cause error) error {
	return &Error{Op: op, Kind: ErrNotFound, Message: msg, Err: cause}
}

func invalidReference(op, msg string, cause error) error {
	return &Error{Op: op, Kind: ErrInvalidReference, Message: msg, Err: cause}
}

// Message extracts the client message from err. Errors that did not come
// from this package yield the empty string.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
