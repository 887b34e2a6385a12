package service

import (
	"context"

	"github.com/okian/discography/internal/domain/model"
	"github.com/okian/discography/pkg/logger"
)

// ListSongs returns every song.
func (s *Service) ListSongs(ctx context.Context) []model.Song {
	return s.store.Songs(ctx)
}

// GetSong returns the song with album and artist summaries attached.
func (s *Service) GetSong(ctx context.Context, id int) (model.SongView, error) {
	const op = "service.GetSong"
	song, err := s.store.Song(ctx, id)
	if err != nil {
		return model.SongView{}, s.classify(ctx, op, err, MsgSongNotFound, "")
	}
	view := model.SongView{Song: song}
	album, err := s.store.Album(ctx, song.AlbumID)
	if err != nil {
		return view, nil
	}
	view.Album = album.Summary()
	if artist, err := s.store.Artist(ctx, album.ArtistID); err == nil {
		view.Artist = artist.Summary()
	}
	return view, nil
}

// SongsByTrackNumber returns every song at position n on its album.
func (s *Service) SongsByTrackNumber(ctx context.Context, n int) ([]model.Song, error) {
	const op = "service.SongsByTrackNumber"
	songs := s.store.SongsByTrackNumber(ctx, n)
	if len(songs) == 0 {
		return nil, notFound(op, MsgSongsNotFound, nil)
	}
	return songs, nil
}

// CreateSong stores a new song under albumID.
func (s *Service) CreateSong(ctx context.Context, albumID int, in model.NewSong) (model.Song, error) {
	const op = "service.CreateSong"
	song, err := s.store.InsertSong(ctx, albumID, in, s.timestamp())
	if err != nil {
		return model.Song{}, s.classify(ctx, op, err, MsgAlbumNotFound, MsgAlbumNotFound)
	}
	s.logger.Debug(ctx, "song created",
		logger.Int("songId", song.SongID),
		logger.Int("albumId", song.AlbumID),
	)
	return song, nil
}

// UpdateSong applies the supplied fields of patch. Moving the song to an
// unknown album fails without changing anything.
func (s *Service) UpdateSong(ctx context.Context, id int, patch model.SongPatch) (model.Song, error) {
	const op = "service.UpdateSong"
	song, err := s.store.UpdateSong(ctx, id, patch, s.timestamp())
	if err != nil {
		return model.Song{}, s.classify(ctx, op, err, MsgSongNotFound, MsgSongAlbumMissing)
	}
	return song, nil
}

// DeleteSong removes a song.
func (s *Service) DeleteSong(ctx context.Context, id int) error {
	const op = "service.DeleteSong"
	if err := s.store.DeleteSong(ctx, id); err != nil {
		return s.classify(ctx, op, err, MsgSongNotFound, "")
	}
	s.logger.Debug(ctx, "song deleted", logger.Int("songId", id))
	return nil
}
