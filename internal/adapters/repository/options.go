package repository

// defaultFirstID leaves id 1 to the seed data.
const defaultFirstID = 2

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithFirstID sets the id handed to the first entity created in each
// collection. Seeded ids still push the counters past themselves.
func WithFirstID(id int) Option {
	return func(s *MemoryStore) {
		if id > 0 {
			s.firstID = id
		}
	}
}

// WithSnapshot seeds the store at construction time.
func WithSnapshot(snap *Snapshot) Option {
	return func(s *MemoryStore) {
		s.seed = snap
	}
}
