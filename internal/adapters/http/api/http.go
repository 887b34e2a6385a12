// Package api exposes the catalog over HTTP: the resolver with its route
// table, body decoding, middleware and the operational endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	service "github.com/okian/discography/internal/app"
	"github.com/okian/discography/internal/domain/model"
	"github.com/okian/discography/pkg/logger"
)

// Catalog is the set of operations the resolver dispatches to. Using an
// interface bundle keeps the handler layer loosely coupled to the service.
type Catalog interface {
	Exists(ctx context.Context, kind model.Kind, id int) bool

	ListArtists(ctx context.Context) []model.Artist
	GetArtist(ctx context.Context, id int) (model.ArtistView, error)
	ArtistAlbums(ctx context.Context, id int) ([]model.Album, error)
	ArtistSongs(ctx context.Context, id int) ([]model.Song, error)
	CreateArtist(ctx context.Context, name string) (model.Artist, error)
	UpdateArtist(ctx context.Context, id int, patch model.ArtistPatch) (model.Artist, error)
	DeleteArtist(ctx context.Context, id int) error

	ListAlbums(ctx context.Context) []model.Album
	GetAlbum(ctx context.Context, id int) (model.AlbumView, error)
	AlbumSongs(ctx context.Context, id int) ([]model.Song, error)
	CreateAlbum(ctx context.Context, artistID int, name string) (model.Album, error)
	UpdateAlbum(ctx context.Context, id int, patch model.AlbumPatch) (model.Album, error)
	DeleteAlbum(ctx context.Context, id int) error

	ListSongs(ctx context.Context) []model.Song
	GetSong(ctx context.Context, id int) (model.SongView, error)
	SongsByTrackNumber(ctx context.Context, n int) ([]model.Song, error)
	CreateSong(ctx context.Context, albumID int, song model.NewSong) (model.Song, error)
	UpdateSong(ctx context.Context, id int, patch model.SongPatch) (model.Song, error)
	DeleteSong(ctx context.Context, id int) error
}

var _ Catalog = (*service.Service)(nil)

// Server wires HTTP routes for the catalog API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	resolver      *Resolver
}

// NewServer creates a new API server with all handlers.
func NewServer(catalog Catalog, statsProvider StatsProvider, opts ...ResolverOption) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		resolver:      NewResolver(catalog, opts...),
	}
}

// Register attaches all HTTP routes to r. Anything chi cannot match goes
// to the resolver, which owns the catalog paths and the fallback.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	catalog := MetricsMiddleware(s.resolver.ServeHTTP, "catalog")
	r.Handle("/*", catalog)
	r.NotFound(catalog)
	r.MethodNotAllowed(catalog)
}

// Resolver returns the catalog resolver.
func (s *Server) Resolver() *Resolver { return s.resolver }

type messageResponse struct {
	Message string `json:"message"`
}

const (
	msgEndpointNotFound = "Endpoint not found"
	msgDeleted          = "Successfully deleted"
	msgInternal         = "Internal server error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// failure maps a catalog error onto a response. Validation failures are
// framed as not found.
func failure(ctx context.Context, err error) Response {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInvalidReference):
		return message(http.StatusNotFound, service.Message(err))
	default:
		logger.Get().Error(ctx, "catalog operation failed", logger.Error(err))
		return message(http.StatusInternalServerError, msgInternal)
	}
}

func message(status int, msg string) Response {
	return Response{Status: status, Body: messageResponse{Message: msg}}
}
