package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okian/discography/internal/domain/model"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func seededStore(t *testing.T) *MemoryStore {
	t.Helper()
	return NewMemoryStore(context.Background(), WithSnapshot(&Snapshot{
		Artists: map[int]model.Artist{1: {Name: "Red Hot Chili Peppers"}},
		Albums:  map[int]model.Album{1: {Name: "Stadium Arcadium", ArtistID: 1}},
		Songs:   map[int]model.Song{1: {Name: "Dani California", TrackNumber: 1, AlbumID: 1, Lyrics: "Getting born in the state of Mississippi"}},
	}))
}

func TestMemoryStore_Seeding(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	if got := store.Counts(ctx); got != (Counts{Artists: 1, Albums: 1, Songs: 1}) {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got := store.NextIDs(ctx); got != (Counts{Artists: 2, Albums: 2, Songs: 2}) {
		t.Fatalf("counters should start at 2, got %+v", got)
	}

	artist, err := store.Artist(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if artist.ArtistID != 1 {
		t.Errorf("seed key should set the id, got %d", artist.ArtistID)
	}
}

func TestMemoryStore_SeedIDsPushCounters(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx, WithSnapshot(&Snapshot{
		Artists: map[int]model.Artist{1: {Name: "a"}, 7: {Name: "b"}},
	}))

	if got := store.NextIDs(ctx).Artists; got != 8 {
		t.Fatalf("expected next artist id 8, got %d", got)
	}
	if got := store.NextIDs(ctx).Albums; got != 2 {
		t.Fatalf("expected next album id 2, got %d", got)
	}

	created, err := store.InsertArtist(ctx, "c", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ArtistID != 8 {
		t.Errorf("expected id 8, got %d", created.ArtistID)
	}
}

func TestMemoryStore_IDsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	first, _ := store.InsertArtist(ctx, "first", testNow)
	if first.ArtistID != 2 {
		t.Fatalf("expected id 2, got %d", first.ArtistID)
	}
	if err := store.DeleteArtist(ctx, first.ArtistID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := store.InsertArtist(ctx, "second", testNow)
	if second.ArtistID != 3 {
		t.Fatalf("expected id 3 after delete, got %d", second.ArtistID)
	}
}

func TestMemoryStore_CountersAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	if _, err := store.InsertArtist(ctx, "x", testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	album, err := store.InsertAlbum(ctx, 1, "y", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if album.AlbumID != 2 {
		t.Fatalf("album counter should not follow the artist counter, got %d", album.AlbumID)
	}
	song, err := store.InsertSong(ctx, album.AlbumID, model.NewSong{Name: "z", TrackNumber: 4}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if song.SongID != 2 || song.AlbumID != album.AlbumID || song.TrackNumber != 4 {
		t.Fatalf("unexpected song: %+v", song)
	}
	if song.CreatedAt == nil || !song.CreatedAt.Equal(testNow) {
		t.Errorf("createdAt not stamped: %v", song.CreatedAt)
	}
	if song.UpdatedAt != nil {
		t.Errorf("updatedAt should be unset on creation")
	}
}

func TestMemoryStore_InsertRequiresParent(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	if _, err := store.InsertAlbum(ctx, 99, "orphan", testNow); !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}
	if _, err := store.InsertSong(ctx, 99, model.NewSong{Name: "orphan"}, testNow); !errors.Is(err, ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}
	if got := store.NextIDs(ctx); got != (Counts{Artists: 2, Albums: 2, Songs: 2}) {
		t.Fatalf("failed inserts must not consume ids, got %+v", got)
	}
}

func TestMemoryStore_UpdateAlbumIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	_, err := store.UpdateAlbum(ctx, 1, model.AlbumPatch{Name: ptr("Renamed"), ArtistID: ptr(99999)}, testNow)
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
	if !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected the missing artist to be named, got %v", err)
	}

	album, _ := store.Album(ctx, 1)
	if album.Name != "Stadium Arcadium" {
		t.Errorf("name must not change on a failed reassignment, got %q", album.Name)
	}
	if album.UpdatedAt != nil {
		t.Errorf("updatedAt must not be stamped on a failed update")
	}
}

func TestMemoryStore_UpdateAlbum(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	artist, _ := store.InsertArtist(ctx, "Other", testNow)

	later := testNow.Add(time.Hour)
	album, err := store.UpdateAlbum(ctx, 1, model.AlbumPatch{ArtistID: ptr(artist.ArtistID)}, later)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if album.ArtistID != artist.ArtistID {
		t.Errorf("expected artist %d, got %d", artist.ArtistID, album.ArtistID)
	}
	if album.Name != "Stadium Arcadium" {
		t.Errorf("unsupplied name must be kept, got %q", album.Name)
	}
	if album.UpdatedAt == nil || !album.UpdatedAt.Equal(later) {
		t.Errorf("updatedAt not stamped: %v", album.UpdatedAt)
	}

	if _, err := store.UpdateAlbum(ctx, 42, model.AlbumPatch{}, later); !errors.Is(err, ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}
}

func TestMemoryStore_UpdateSong(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	_, err := store.UpdateSong(ctx, 1, model.SongPatch{Lyrics: ptr("new"), AlbumID: ptr(5)}, testNow)
	if !errors.Is(err, ErrInvalidReference) || !errors.Is(err, ErrAlbumNotFound) {
		t.Fatalf("expected invalid album reference, got %v", err)
	}
	song, _ := store.Song(ctx, 1)
	if song.Lyrics != "Getting born in the state of Mississippi" {
		t.Errorf("lyrics must not change on a failed reassignment, got %q", song.Lyrics)
	}

	song, err = store.UpdateSong(ctx, 1, model.SongPatch{Name: ptr("Snow"), TrackNumber: ptr(2)}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if song.Name != "Snow" || song.TrackNumber != 2 || song.AlbumID != 1 {
		t.Errorf("unexpected song: %+v", song)
	}
}

func TestMemoryStore_Filters(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	other, _ := store.InsertArtist(ctx, "Other", testNow)
	album, _ := store.InsertAlbum(ctx, other.ArtistID, "B-Sides", testNow)
	_, _ = store.InsertSong(ctx, album.AlbumID, model.NewSong{Name: "One", TrackNumber: 1}, testNow)
	_, _ = store.InsertSong(ctx, album.AlbumID, model.NewSong{Name: "Two", TrackNumber: 2}, testNow)

	if got := store.AlbumsByArtist(ctx, 1); len(got) != 1 || got[0].AlbumID != 1 {
		t.Errorf("unexpected albums for artist 1: %+v", got)
	}
	if got := store.SongsByAlbum(ctx, album.AlbumID); len(got) != 2 || got[0].Name != "One" {
		t.Errorf("unexpected songs for album: %+v", got)
	}
	if got := store.SongsByAlbum(ctx, 1, album.AlbumID); len(got) != 3 {
		t.Errorf("expected 3 songs across both albums, got %d", len(got))
	}
	if got := store.SongsByTrackNumber(ctx, 1); len(got) != 2 {
		t.Errorf("expected 2 opening tracks, got %d", len(got))
	}
	if got := store.SongsByAlbum(ctx); got == nil || len(got) != 0 {
		t.Errorf("no album ids should give an empty, non-nil slice, got %#v", got)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	if err := store.DeleteSong(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.DeleteSong(ctx, 1); !errors.Is(err, ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}
	if _, err := store.Song(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.DeleteAlbum(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.DeleteArtist(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.Counts(ctx); got != (Counts{}) {
		t.Fatalf("expected an empty store, got %+v", got)
	}
}

func TestMemoryStore_Exists(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	cases := []struct {
		kind model.Kind
		id   int
		want bool
	}{
		{model.KindArtist, 1, true},
		{model.KindAlbum, 1, true},
		{model.KindSong, 1, true},
		{model.KindSong, 2, false},
		{model.KindArtist, model.UnknownID, false},
		{model.Kind("label"), 1, false},
	}
	for _, c := range cases {
		if got := store.Exists(ctx, c.kind, c.id); got != c.want {
			t.Errorf("Exists(%s, %d) = %v, want %v", c.kind, c.id, got, c.want)
		}
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	albums := store.Albums(ctx)
	albums[0].Name = "mutated"

	album, _ := store.Album(ctx, 1)
	if album.Name != "Stadium Arcadium" {
		t.Fatalf("callers must not be able to mutate stored state, got %q", album.Name)
	}
}

func TestMemoryStore_ConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	const writers = 64
	var wg sync.WaitGroup
	ids := make(chan int, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := store.InsertArtist(ctx, "concurrent", testNow)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			ids <- a.ArtistID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, writers)
	for id := range ids {
		if seen[id] {
			t.Fatalf("id %d handed out twice", id)
		}
		seen[id] = true
	}
	if got := store.NextIDs(ctx).Artists; got != 2+writers {
		t.Fatalf("expected next id %d, got %d", 2+writers, got)
	}
}

func TestMemoryStore_WithFirstID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx, WithFirstID(100))

	artist, err := store.InsertArtist(ctx, "first", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if artist.ArtistID != 100 {
		t.Fatalf("expected id 100, got %d", artist.ArtistID)
	}
	if got := store.Artists(ctx); len(got) != 1 {
		t.Fatalf("expected one artist, got %d", len(got))
	}
}
