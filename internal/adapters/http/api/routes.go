package api

import (
	"context"
	"net/http"

	service "github.com/okian/discography/internal/app"
	"github.com/okian/discography/internal/domain/model"
)

// newRouteTable lists every catalog route. Within one method, collection
// routes come before their sub-resources.
func newRouteTable(h handlers) []route {
	return []route{
		{http.MethodGet, []string{"artists"}, h.listArtists},
		{http.MethodGet, []string{"artists", idParam}, h.getArtist},
		{http.MethodGet, []string{"artists", idParam, "albums"}, h.artistAlbums},
		{http.MethodGet, []string{"artists", idParam, "songs"}, h.artistSongs},
		{http.MethodGet, []string{"albums"}, h.listAlbums},
		{http.MethodGet, []string{"albums", idParam}, h.getAlbum},
		{http.MethodGet, []string{"albums", idParam, "songs"}, h.albumSongs},
		{http.MethodGet, []string{"trackNumbers", idParam, "songs"}, h.trackNumberSongs},
		{http.MethodGet, []string{"songs"}, h.listSongs},
		{http.MethodGet, []string{"songs", idParam}, h.getSong},

		{http.MethodPost, []string{"artists"}, h.createArtist},
		{http.MethodPost, []string{"artists", idParam, "albums"}, h.createAlbum},
		{http.MethodPost, []string{"albums", idParam, "songs"}, h.createSong},

		{http.MethodPut, []string{"artists", idParam}, h.updateArtist},
		{http.MethodPatch, []string{"artists", idParam}, h.updateArtist},
		{http.MethodPut, []string{"albums", idParam}, h.updateAlbum},
		{http.MethodPatch, []string{"albums", idParam}, h.updateAlbum},
		{http.MethodPut, []string{"songs", idParam}, h.updateSong},
		{http.MethodPatch, []string{"songs", idParam}, h.updateSong},

		{http.MethodDelete, []string{"artists", idParam}, h.deleteArtist},
		{http.MethodDelete, []string{"albums", idParam}, h.deleteAlbum},
		{http.MethodDelete, []string{"songs", idParam}, h.deleteSong},
	}
}

type handlers struct {
	catalog Catalog
}

func success(v any) Response { return Response{Status: http.StatusOK, Body: v} }

func result[T any](ctx context.Context, status int, v T, err error) Response {
	if err != nil {
		return failure(ctx, err)
	}
	return Response{Status: status, Body: v}
}

func deleted(ctx context.Context, err error) Response {
	if err != nil {
		return failure(ctx, err)
	}
	return message(http.StatusOK, msgDeleted)
}

// Artists

func (h handlers) listArtists(ctx context.Context, _ request) Response {
	return success(h.catalog.ListArtists(ctx))
}

func (h handlers) getArtist(ctx context.Context, req request) Response {
	view, err := h.catalog.GetArtist(ctx, req.id)
	return result(ctx, http.StatusOK, view, err)
}

func (h handlers) artistAlbums(ctx context.Context, req request) Response {
	albums, err := h.catalog.ArtistAlbums(ctx, req.id)
	return result(ctx, http.StatusOK, albums, err)
}

func (h handlers) artistSongs(ctx context.Context, req request) Response {
	songs, err := h.catalog.ArtistSongs(ctx, req.id)
	return result(ctx, http.StatusOK, songs, err)
}

func (h handlers) createArtist(ctx context.Context, req request) Response {
	name, _ := req.payload.Text("name")
	artist, err := h.catalog.CreateArtist(ctx, name)
	return result(ctx, http.StatusCreated, artist, err)
}

func (h handlers) updateArtist(ctx context.Context, req request) Response {
	var patch model.ArtistPatch
	if name, ok := req.payload.Text("name"); ok {
		patch.Name = &name
	}
	artist, err := h.catalog.UpdateArtist(ctx, req.id, patch)
	return result(ctx, http.StatusOK, artist, err)
}

func (h handlers) deleteArtist(ctx context.Context, req request) Response {
	return deleted(ctx, h.catalog.DeleteArtist(ctx, req.id))
}

// Albums

func (h handlers) listAlbums(ctx context.Context, _ request) Response {
	return success(h.catalog.ListAlbums(ctx))
}

func (h handlers) getAlbum(ctx context.Context, req request) Response {
	view, err := h.catalog.GetAlbum(ctx, req.id)
	return result(ctx, http.StatusOK, view, err)
}

func (h handlers) albumSongs(ctx context.Context, req request) Response {
	songs, err := h.catalog.AlbumSongs(ctx, req.id)
	return result(ctx, http.StatusOK, songs, err)
}

func (h handlers) createAlbum(ctx context.Context, req request) Response {
	name, _ := req.payload.Text("name")
	album, err := h.catalog.CreateAlbum(ctx, req.id, name)
	return result(ctx, http.StatusCreated, album, err)
}

func (h handlers) updateAlbum(ctx context.Context, req request) Response {
	var patch model.AlbumPatch
	if name, ok := req.payload.Text("name"); ok {
		patch.Name = &name
	}
	if artistID, ok := req.payload.Reference("artistId"); ok {
		patch.ArtistID = &artistID
	}
	album, err := h.catalog.UpdateAlbum(ctx, req.id, patch)
	return result(ctx, http.StatusOK, album, err)
}

func (h handlers) deleteAlbum(ctx context.Context, req request) Response {
	return deleted(ctx, h.catalog.DeleteAlbum(ctx, req.id))
}

// Songs

func (h handlers) listSongs(ctx context.Context, _ request) Response {
	return success(h.catalog.ListSongs(ctx))
}

func (h handlers) getSong(ctx context.Context, req request) Response {
	view, err := h.catalog.GetSong(ctx, req.id)
	return result(ctx, http.StatusOK, view, err)
}

func (h handlers) trackNumberSongs(ctx context.Context, req request) Response {
	if !req.idValid {
		return message(http.StatusNotFound, service.MsgSongsNotFound)
	}
	songs, err := h.catalog.SongsByTrackNumber(ctx, req.id)
	return result(ctx, http.StatusOK, songs, err)
}

func (h handlers) createSong(ctx context.Context, req request) Response {
	var in model.NewSong
	in.Name, _ = req.payload.Text("name")
	in.Lyrics, _ = req.payload.Text("lyrics")
	in.TrackNumber, _ = req.payload.Number("trackNumber")
	song, err := h.catalog.CreateSong(ctx, req.id, in)
	return result(ctx, http.StatusCreated, song, err)
}

func (h handlers) updateSong(ctx context.Context, req request) Response {
	var patch model.SongPatch
	if name, ok := req.payload.Text("name"); ok {
		patch.Name = &name
	}
	if lyrics, ok := req.payload.Text("lyrics"); ok {
		patch.Lyrics = &lyrics
	}
	if n, ok := req.payload.Number("trackNumber"); ok {
		patch.TrackNumber = &n
	}
	if albumID, ok := req.payload.Reference("albumId"); ok {
		patch.AlbumID = &albumID
	}
	song, err := h.catalog.UpdateSong(ctx, req.id, patch)
	return result(ctx, http.StatusOK, song, err)
}

func (h handlers) deleteSong(ctx context.Context, req request) Response {
	return deleted(ctx, h.catalog.DeleteSong(ctx, req.id))
}
