package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/okian/discography/internal/domain/model"
)

// Seed file names looked up inside the seeds directory.
const (
	ArtistsSeedFile = "artists.json"
	AlbumsSeedFile  = "albums.json"
	SongsSeedFile   = "songs.json"
)

// Snapshot is the initial catalog state. Each seed file is a JSON object
// mapping the id (as a string key) to the entity; the key is authoritative
// over any id field inside the entity.
type Snapshot struct {
	Artists map[int]model.Artist `json:"artists"`
	Albums  map[int]model.Album  `json:"albums"`
	Songs   map[int]model.Song   `json:"songs"`
}

// Counts summarises the snapshot size.
func (s *Snapshot) Counts() Counts {
	return Counts{Artists: len(s.Artists), Albums: len(s.Albums), Songs: len(s.Songs)}
}

// LoadSnapshotFromDir reads the three seed files from dir. A missing file
// yields an empty collection; unreadable or malformed files are errors.
// An empty dir gives an empty snapshot.
func LoadSnapshotFromDir(dir string) (*Snapshot, error) {
	if dir == "" {
		return &Snapshot{
			Artists: map[int]model.Artist{},
			Albums:  map[int]model.Album{},
			Songs:   map[int]model.Song{},
		}, nil
	}

	var (
		snap Snapshot
		err  error
	)
	if snap.Artists, err = readSeedFile[model.Artist](filepath.Join(dir, ArtistsSeedFile)); err != nil {
		return nil, err
	}
	if snap.Albums, err = readSeedFile[model.Album](filepath.Join(dir, AlbumsSeedFile)); err != nil {
		return nil, err
	}
	if snap.Songs, err = readSeedFile[model.Song](filepath.Join(dir, SongsSeedFile)); err != nil {
		return nil, err
	}
	return &snap, nil
}

func readSeedFile[T any](path string) (map[int]T, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[int]T{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}

	out := map[int]T{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrInvalidSeed, path, err)
	}
	for id := range out {
		if id <= 0 {
			return nil, fmt.Errorf("%w: %s: id %d is not positive", ErrInvalidSeed, path, id)
		}
	}
	return out, nil
}
