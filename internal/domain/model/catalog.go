// Package model contains domain models passed between layers.
package model

// Kind names one of the three catalog collections.
type Kind string

// Catalog collections.
const (
	KindArtist Kind = "artist"
	KindAlbum  Kind = "album"
	KindSong   Kind = "song"
)

// UnknownID stands in for an identifier that could not be parsed.
// Assigned ids are always positive, so it never matches an entity.
const UnknownID = -1

// Artist owns zero or more albums through Album.ArtistID.
type Artist struct {
	ArtistID  int        `json:"artistId"`
	Name      string     `json:"name"`
	CreatedAt *Timestamp `json:"createdAt,omitempty"`
	UpdatedAt *Timestamp `json:"updatedAt,omitempty"`
}

// Album belongs to an artist and owns zero or more songs.
type Album struct {
	AlbumID   int        `json:"albumId"`
	Name      string     `json:"name"`
	ArtistID  int        `json:"artistId"`
	CreatedAt *Timestamp `json:"createdAt,omitempty"`
	UpdatedAt *Timestamp `json:"updatedAt,omitempty"`
}

// Song belongs to an album.
type Song struct {
	SongID      int        `json:"songId"`
	Name        string     `json:"name"`
	Lyrics      string     `json:"lyrics"`
	TrackNumber int        `json:"trackNumber"`
	AlbumID     int        `json:"albumId"`
	CreatedAt   *Timestamp `json:"createdAt,omitempty"`
	UpdatedAt   *Timestamp `json:"updatedAt,omitempty"`
}

// ArtistPatch lists the artist fields an update may overwrite.
// A nil field is left untouched.
type ArtistPatch struct {
	Name *string
}

// AlbumPatch lists the album fields an update may overwrite.
type AlbumPatch struct {
	Name     *string
	ArtistID *int
}

// SongPatch lists the song fields an update may overwrite.
type SongPatch struct {
	Name        *string
	Lyrics      *string
	TrackNumber *int
	AlbumID     *int
}

// NewSong carries the client supplied fields of a song being created.
type NewSong struct {
	Name        string
	Lyrics      string
	TrackNumber int
}
