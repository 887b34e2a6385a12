// Package service implements the catalog operations behind the HTTP API:
// relation joins, response projections and error classification.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/okian/discography/internal/adapters/repository"
	"github.com/okian/discography/internal/domain/model"
	"github.com/okian/discography/pkg/logger"
)

// Service implements the catalog operations over a repository.Store.
type Service struct {
	store  repository.Store
	logger logger.Logger
	now    func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service backed by store.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("catalog")
	}
	return s
}

// Stats is the store summary served on /stats.
type Stats struct {
	Counts  repository.Counts `json:"counts"`
	NextIDs repository.Counts `json:"nextIds"`
}

// Stats returns collection sizes and the ids the next creations receive.
func (s *Service) Stats(ctx context.Context) Stats {
	return Stats{
		Counts:  s.store.Counts(ctx),
		NextIDs: s.store.NextIDs(ctx),
	}
}

// Exists reports whether an entity of kind with id is stored.
func (s *Service) Exists(ctx context.Context, kind model.Kind, id int) bool {
	return s.store.Exists(ctx, kind, id)
}

// timestamp is millisecond precision UTC, the resolution clients expect.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// classify turns a store error into an *Error. missing is the message used
// when the entity itself was not found; dangling is used for a foreign key
// that points at nothing.
func (s *Service) classify(ctx context.Context, op string, err error, missing, dangling string) error {
	switch {
	case errors.Is(err, repository.ErrInvalidReference):
		return invalidReference(op, dangling, err)
	case errors.Is(err, repository.ErrNotFound):
		return notFound(op, missing, err)
	default:
		s.logger.Error(ctx, "catalog store failure", logger.String("op", op), logger.Error(err))
		return &Error{Op: op, Kind: ErrInternal, Message: "Internal server error", Err: err}
	}
}
