package model

// ArtistSummary is the artist shape embedded in album and song responses.
type ArtistSummary struct {
	Name     string `json:"name"`
	ArtistID int    `json:"artistId"`
}

// AlbumSummary is the album shape embedded in song responses.
type AlbumSummary struct {
	Name     string `json:"name"`
	AlbumID  int    `json:"albumId"`
	ArtistID int    `json:"artistId"`
}

// ArtistView is an artist with its albums attached.
type ArtistView struct {
	Artist
	Albums []Album `json:"albums"`
}

// AlbumView is an album with its artist summary and songs attached.
// Artist is nil when the album points at an artist that was deleted.
type AlbumView struct {
	Album
	Artist *ArtistSummary `json:"artist,omitempty"`
	Songs  []Song         `json:"songs"`
}

// SongView is a song with album and artist summaries attached.
type SongView struct {
	Song
	Album  *AlbumSummary  `json:"album,omitempty"`
	Artist *ArtistSummary `json:"artist,omitempty"`
}

// Summary projects the artist onto its embedded shape.
func (a Artist) Summary() *ArtistSummary {
	return &ArtistSummary{Name: a.Name, ArtistID: a.ArtistID}
}

// Summary projects the album onto its embedded shape.
func (a Album) Summary() *AlbumSummary {
	return &AlbumSummary{Name: a.Name, AlbumID: a.AlbumID, ArtistID: a.ArtistID}
}
