package service

import (
	"context"

	"github.com/okian/discography/internal/domain/model"
	"github.com/okian/discography/pkg/logger"
)

// ListAlbums returns every album.
func (s *Service) ListAlbums(ctx context.Context) []model.Album {
	return s.store.Albums(ctx)
}

// GetAlbum returns the album with its artist summary and songs attached.
func (s *Service) GetAlbum(ctx context.Context, id int) (model.AlbumView, error) {
	const op = "service.GetAlbum"
	album, err := s.store.Album(ctx, id)
	if err != nil {
		return model.AlbumView{}, s.classify(ctx, op, err, MsgAlbumNotFound, "")
	}
	view := model.AlbumView{
		Album: album,
		Songs: s.store.SongsByAlbum(ctx, id),
	}
	if artist, err := s.store.Artist(ctx, album.ArtistID); err == nil {
		view.Artist = artist.Summary()
	}
	return view, nil
}

// AlbumSongs returns the songs of an album.
func (s *Service) AlbumSongs(ctx context.Context, id int) ([]model.Song, error) {
	const op = "service.AlbumSongs"
	if !s.store.Exists(ctx, model.KindAlbum, id) {
		return nil, notFound(op, MsgAlbumNotFound, nil)
	}
	songs := s.store.SongsByAlbum(ctx, id)
	if len(songs) == 0 {
		return nil, notFound(op, MsgSongsNotFound, nil)
	}
	return songs, nil
}

// CreateAlbum stores a new album under artistID.
func (s *Service) CreateAlbum(ctx context.Context, artistID int, name string) (model.Album, error) {
	const op = "service.CreateAlbum"
	album, err := s.store.InsertAlbum(ctx, artistID, name, s.timestamp())
	if err != nil {
		return model.Album{}, s.classify(ctx, op, err, MsgArtistNotFound, MsgArtistNotFound)
	}
	s.logger.Debug(ctx, "album created",
		logger.Int("albumId", album.AlbumID),
		logger.Int("artistId", album.ArtistID),
	)
	return album, nil
}

// UpdateAlbum applies the supplied fields of patch. Reassigning the album to
// an unknown artist fails without changing anything.
func (s *Service) UpdateAlbum(ctx context.Context, id int, patch model.AlbumPatch) (model.Album, error) {
	const op = "service.UpdateAlbum"
	album, err := s.store.UpdateAlbum(ctx, id, patch, s.timestamp())
	if err != nil {
		return model.Album{}, s.classify(ctx, op, err, MsgAlbumNotFound, MsgAlbumArtistMissing)
	}
	return album, nil
}

// DeleteAlbum removes an album. Its songs are kept.
func (s *Service) DeleteAlbum(ctx context.Context, id int) error {
	const op = "service.DeleteAlbum"
	if err := s.store.DeleteAlbum(ctx, id); err != nil {
		return s.classify(ctx, op, err, MsgAlbumNotFound, "")
	}
	s.logger.Debug(ctx, "album deleted", logger.Int("albumId", id))
	return nil
}
