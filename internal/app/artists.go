package service

import (
	"context"

	"github.com/okian/discography/internal/domain/model"
	"github.com/okian/discography/pkg/logger"
)

// ListArtists returns every artist.
func (s *Service) ListArtists(ctx context.Context) []model.Artist {
	return s.store.Artists(ctx)
}

// GetArtist returns the artist with its albums attached.
func (s *Service) GetArtist(ctx context.Context, id int) (model.ArtistView, error) {
	const op = "service.GetArtist"
	artist, err := s.store.Artist(ctx, id)
	if err != nil {
		return model.ArtistView{}, s.classify(ctx, op, err, MsgArtistNotFound, "")
	}
	return model.ArtistView{
		Artist: artist,
		Albums: s.store.AlbumsByArtist(ctx, id),
	}, nil
}

// ArtistAlbums returns the albums of an artist.
func (s *Service) ArtistAlbums(ctx context.Context, id int) ([]model.Album, error) {
	const op = "service.ArtistAlbums"
	if !s.store.Exists(ctx, model.KindArtist, id) {
		return nil, notFound(op, MsgArtistNotFound, nil)
	}
	albums := s.store.AlbumsByArtist(ctx, id)
	if len(albums) == 0 {
		return nil, notFound(op, MsgNoAlbumsFound, nil)
	}
	return albums, nil
}

// ArtistSongs returns the songs on any album of an artist.
func (s *Service) ArtistSongs(ctx context.Context, id int) ([]model.Song, error) {
	const op = "service.ArtistSongs"
	if !s.store.Exists(ctx, model.KindArtist, id) {
		return nil, notFound(op, MsgArtistNotFound, nil)
	}
	albums := s.store.AlbumsByArtist(ctx, id)
	ids := make([]int, len(albums))
	for i, a := range albums {
		ids[i] = a.AlbumID
	}
	songs := s.store.SongsByAlbum(ctx, ids...)
	if len(songs) == 0 {
		return nil, notFound(op, MsgNoSongsFound, nil)
	}
	return songs, nil
}

// CreateArtist stores a new artist.
func (s *Service) CreateArtist(ctx context.Context, name string) (model.Artist, error) {
	const op = "service.CreateArtist"
	artist, err := s.store.InsertArtist(ctx, name, s.timestamp())
	if err != nil {
		return model.Artist{}, s.classify(ctx, op, err, MsgArtistNotFound, "")
	}
	s.logger.Debug(ctx, "artist created", logger.Int("artistId", artist.ArtistID))
	return artist, nil
}

// UpdateArtist applies the supplied fields of patch.
func (s *Service) UpdateArtist(ctx context.Context, id int, patch model.ArtistPatch) (model.Artist, error) {
	const op = "service.UpdateArtist"
	artist, err := s.store.UpdateArtist(ctx, id, patch, s.timestamp())
	if err != nil {
		return model.Artist{}, s.classify(ctx, op, err, MsgArtistNotFound, "")
	}
	return artist, nil
}

// DeleteArtist removes an artist. Its albums are kept.
func (s *Service) DeleteArtist(ctx context.Context, id int) error {
	const op = "service.DeleteArtist"
	if err := s.store.DeleteArtist(ctx, id); err != nil {
		return s.classify(ctx, op, err, MsgArtistNotFound, "")
	}
	s.logger.Debug(ctx, "artist deleted", logger.Int("artistId", id))
	return nil
}
