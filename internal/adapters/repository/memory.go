package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/okian/discography/internal/domain/model"
	"github.com/okian/discography/pkg/metrics"
)

// Mutation labels used for metrics.
const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// MemoryStore is the in-memory Store. Collections are id-keyed maps and
// every operation, validate-then-write updates included, runs under mu.
type MemoryStore struct {
	mu sync.RWMutex

	artists map[int]model.Artist
	albums  map[int]model.Album
	songs   map[int]model.Song

	nextArtistID int
	nextAlbumID  int
	nextSongID   int

	firstID int
	seed    *Snapshot
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store, seeded when WithSnapshot is given.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		artists: make(map[int]model.Artist),
		albums:  make(map[int]model.Album),
		songs:   make(map[int]model.Song),
		firstID: defaultFirstID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.nextArtistID = s.firstID
	s.nextAlbumID = s.firstID
	s.nextSongID = s.firstID

	if s.seed != nil {
		s.Load(ctx, s.seed)
		s.seed = nil
	}
	return s
}

// Load replaces the collections with the snapshot contents. Counters never
// move backwards and always end up past the largest seeded id.
func (s *MemoryStore) Load(_ context.Context, snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.artists = make(map[int]model.Artist, len(snap.Artists))
	for id, a := range snap.Artists {
		a.ArtistID = id
		s.artists[id] = a
		s.nextArtistID = max(s.nextArtistID, id+1)
	}
	s.albums = make(map[int]model.Album, len(snap.Albums))
	for id, a := range snap.Albums {
		a.AlbumID = id
		s.albums[id] = a
		s.nextAlbumID = max(s.nextAlbumID, id+1)
	}
	s.songs = make(map[int]model.Song, len(snap.Songs))
	for id, song := range snap.Songs {
		song.SongID = id
		s.songs[id] = song
		s.nextSongID = max(s.nextSongID, id+1)
	}

	metrics.UpdateSeedEntities(string(model.KindArtist), len(s.artists))
	metrics.UpdateSeedEntities(string(model.KindAlbum), len(s.albums))
	metrics.UpdateSeedEntities(string(model.KindSong), len(s.songs))
	s.publishSizes()
}

// Artists

func (s *MemoryStore) Artists(_ context.Context) []model.Artist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.artists, nil)
}

func (s *MemoryStore) Artist(_ context.Context, id int) (model.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.artists[id]
	if !ok {
		metrics.RecordLookupMiss(string(model.KindArtist))
		return model.Artist{}, ErrArtistNotFound
	}
	return a, nil
}

func (s *MemoryStore) InsertArtist(_ context.Context, name string, at time.Time) (model.Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := model.Artist{ArtistID: s.nextArtistID, Name: name, CreatedAt: model.Stamp(at)}
	s.nextArtistID++
	s.artists[a.ArtistID] = a
	s.observe(model.KindArtist, opCreate)
	return a, nil
}

func (s *MemoryStore) UpdateArtist(_ context.Context, id int, patch model.ArtistPatch, at time.Time) (model.Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.artists[id]
	if !ok {
		return model.Artist{}, ErrArtistNotFound
	}
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	a.UpdatedAt = model.Stamp(at)
	s.artists[id] = a
	s.observe(model.KindArtist, opUpdate)
	return a, nil
}

func (s *MemoryStore) DeleteArtist(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.artists[id]; !ok {
		return ErrArtistNotFound
	}
	delete(s.artists, id)
	s.observe(model.KindArtist, opDelete)
	return nil
}

// Albums

func (s *MemoryStore) Albums(_ context.Context) []model.Album {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.albums, nil)
}

func (s *MemoryStore) AlbumsByArtist(_ context.Context, artistID int) []model.Album {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.albums, func(a model.Album) bool { return a.ArtistID == artistID })
}

func (s *MemoryStore) Album(_ context.Context, id int) (model.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.albums[id]
	if !ok {
		metrics.RecordLookupMiss(string(model.KindAlbum))
		return model.Album{}, ErrAlbumNotFound
	}
	return a, nil
}

func (s *MemoryStore) InsertAlbum(_ context.Context, artistID int, name string, at time.Time) (model.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.artists[artistID]; !ok {
		return model.Album{}, ErrArtistNotFound
	}
	a := model.Album{AlbumID: s.nextAlbumID, Name: name, ArtistID: artistID, CreatedAt: model.Stamp(at)}
	s.nextAlbumID++
	s.albums[a.AlbumID] = a
	s.observe(model.KindAlbum, opCreate)
	return a, nil
}

func (s *MemoryStore) UpdateAlbum(_ context.Context, id int, patch model.AlbumPatch, at time.Time) (model.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.albums[id]
	if !ok {
		return model.Album{}, ErrAlbumNotFound
	}
	if patch.ArtistID != nil {
		if _, ok := s.artists[*patch.ArtistID]; !ok {
			return model.Album{}, invalidReference(ErrArtistNotFound)
		}
		a.ArtistID = *patch.ArtistID
	}
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	a.UpdatedAt = model.Stamp(at)
	s.albums[id] = a
	s.observe(model.KindAlbum, opUpdate)
	return a, nil
}

func (s *MemoryStore) DeleteAlbum(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.albums[id]; !ok {
		return ErrAlbumNotFound
	}
	delete(s.albums, id)
	s.observe(model.KindAlbum, opDelete)
	return nil
}

// Songs

func (s *MemoryStore) Songs(_ context.Context) []model.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.songs, nil)
}

func (s *MemoryStore) SongsByAlbum(_ context.Context, albumIDs ...int) []model.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.songs, func(song model.Song) bool { return slices.Contains(albumIDs, song.AlbumID) })
}

func (s *MemoryStore) SongsByTrackNumber(_ context.Context, trackNumber int) []model.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.songs, func(song model.Song) bool { return song.TrackNumber == trackNumber })
}

func (s *MemoryStore) Song(_ context.Context, id int) (model.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	song, ok := s.songs[id]
	if !ok {
		metrics.RecordLookupMiss(string(model.KindSong))
		return model.Song{}, ErrSongNotFound
	}
	return song, nil
}

func (s *MemoryStore) InsertSong(_ context.Context, albumID int, in model.NewSong, at time.Time) (model.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.albums[albumID]; !ok {
		return model.Song{}, ErrAlbumNotFound
	}
	song := model.Song{
		SongID:      s.nextSongID,
		Name:        in.Name,
		Lyrics:      in.Lyrics,
		TrackNumber: in.TrackNumber,
		AlbumID:     albumID,
		CreatedAt:   model.Stamp(at),
	}
	s.nextSongID++
	s.songs[song.SongID] = song
	s.observe(model.KindSong, opCreate)
	return song, nil
}

func (s *MemoryStore) UpdateSong(_ context.Context, id int, patch model.SongPatch, at time.Time) (model.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	song, ok := s.songs[id]
	if !ok {
		return model.Song{}, ErrSongNotFound
	}
	if patch.AlbumID != nil {
		if _, ok := s.albums[*patch.AlbumID]; !ok {
			return model.Song{}, invalidReference(ErrAlbumNotFound)
		}
		song.AlbumID = *patch.AlbumID
	}
	if patch.Name != nil {
		song.Name = *patch.Name
	}
	if patch.Lyrics != nil {
		song.Lyrics = *patch.Lyrics
	}
	if patch.TrackNumber != nil {
		song.TrackNumber = *patch.TrackNumber
	}
	song.UpdatedAt = model.Stamp(at)
	s.songs[id] = song
	s.observe(model.KindSong, opUpdate)
	return song, nil
}

func (s *MemoryStore) DeleteSong(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.songs[id]; !ok {
		return ErrSongNotFound
	}
	delete(s.songs, id)
	s.observe(model.KindSong, opDelete)
	return nil
}

// Bookkeeping

func (s *MemoryStore) Exists(_ context.Context, kind model.Kind, id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ok bool
	switch kind {
	case model.KindArtist:
		_, ok = s.artists[id]
	case model.KindAlbum:
		_, ok = s.albums[id]
	case model.KindSong:
		_, ok = s.songs[id]
	}
	if !ok {
		metrics.RecordLookupMiss(string(kind))
	}
	return ok
}

func (s *MemoryStore) Counts(_ context.Context) Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Counts{Artists: len(s.artists), Albums: len(s.albums), Songs: len(s.songs)}
}

func (s *MemoryStore) NextIDs(_ context.Context) Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Counts{Artists: s.nextArtistID, Albums: s.nextAlbumID, Songs: s.nextSongID}
}

// observe must be called with mu held.
func (s *MemoryStore) observe(kind model.Kind, op string) {
	metrics.RecordCatalogMutation(string(kind), op)
	s.publishSizes()
}

func (s *MemoryStore) publishSizes() {
	metrics.UpdateCatalogSize(string(model.KindArtist), len(s.artists))
	metrics.UpdateCatalogSize(string(model.KindAlbum), len(s.albums))
	metrics.UpdateCatalogSize(string(model.KindSong), len(s.songs))
}

// collect returns the values of m accepted by keep, ordered by id.
// The result is never nil so it encodes as an empty JSON array.
func collect[T any](m map[int]T, keep func(T) bool) []T {
	ids := make([]int, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}
