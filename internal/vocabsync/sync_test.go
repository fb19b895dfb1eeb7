package vocabsync

import (
	"errors"
	"reflect"
	"testing"
)

// memStore is an in-memory Store double
type memStore struct {
	targets   map[int64][]int64          // node -> target vocab ids
	terms     map[int64]map[string]string // vocab id -> language -> term
	userWords map[string]map[string][]string

	failReads  bool
	failWrites bool
}

var errStore = errors.New("store unavailable")

func newMemStore() *memStore {
	return &memStore{
		targets:   make(map[int64][]int64),
		terms:     make(map[int64]map[string]string),
		userWords: make(map[string]map[string][]string),
	}
}

func (m *memStore) GetTargetVocabIDs(nodeID int64) ([]int64, error) {
	if m.failReads {
		return nil, errStore
	}
	return m.targets[nodeID], nil
}

func (m *memStore) GetTermsByIDs(ids []int64, language string) ([]string, error) {
	if m.failReads {
		return nil, errStore
	}
	var terms []string
	for _, id := range ids {
		if term, ok := m.terms[id][language]; ok {
			terms = append(terms, term)
		}
	}
	return terms, nil
}

func (m *memStore) GetUserWords(userID, language string) ([]string, error) {
	if m.failReads {
		return nil, errStore
	}
	return m.userWords[userID][language], nil
}

func (m *memStore) InsertUserWords(userID, language string, words []string) error {
	if m.failWrites {
		return errStore
	}
	if m.userWords[userID] == nil {
		m.userWords[userID] = make(map[string][]string)
	}
	m.userWords[userID][language] = append(m.userWords[userID][language], words...)
	return nil
}

func (m *memStore) addTerm(id int64, language, term string) {
	if m.terms[id] == nil {
		m.terms[id] = make(map[string]string)
	}
	m.terms[id][language] = term
}

func TestSync(t *testing.T) {
	setup := func() *memStore {
		store := newMemStore()
		store.targets[11] = []int64{1, 2, 3}
		store.addTerm(1, "es", "gato")
		store.addTerm(2, "es", "perro")
		store.addTerm(3, "es", "casa")
		return store
	}

	t.Run("adds all unseen terms", func(t *testing.T) {
		store := setup()
		result, err := New(store).Sync("u1", 11, "es")
		if err != nil {
			t.Fatalf("Sync() error = %v", err)
		}
		if !reflect.DeepEqual(result.Added, []string{"gato", "perro", "casa"}) {
			t.Errorf("Added = %v", result.Added)
		}
		if len(result.Skipped) != 0 {
			t.Errorf("Skipped = %v, want empty", result.Skipped)
		}
	})

	t.Run("partitions known terms into skipped", func(t *testing.T) {
		store := setup()
		store.InsertUserWords("u1", "es", []string{"perro"})
		result, err := New(store).Sync("u1", 11, "es")
		if err != nil {
			t.Fatalf("Sync() error = %v", err)
		}
		if !reflect.DeepEqual(result.Added, []string{"gato", "casa"}) {
			t.Errorf("Added = %v", result.Added)
		}
		if !reflect.DeepEqual(result.Skipped, []string{"perro"}) {
			t.Errorf("Skipped = %v", result.Skipped)
		}
	})

	t.Run("second call is idempotent", func(t *testing.T) {
		store := setup()
		syncer := New(store)
		if _, err := syncer.Sync("u1", 11, "es"); err != nil {
			t.Fatalf("first Sync() error = %v", err)
		}
		result, err := syncer.Sync("u1", 11, "es")
		if err != nil {
			t.Fatalf("second Sync() error = %v", err)
		}
		if len(result.Added) != 0 {
			t.Errorf("second sync Added = %v, want empty", result.Added)
		}
		if len(result.Skipped) != 3 {
			t.Errorf("second sync Skipped = %v, want all three terms", result.Skipped)
		}
		if got := store.userWords["u1"]["es"]; len(got) != 3 {
			t.Errorf("stored words = %v, want exactly the node's target terms", got)
		}
	})

	t.Run("node without target vocab returns empty lists", func(t *testing.T) {
		store := setup()
		result, err := New(store).Sync("u1", 99, "es")
		if err != nil {
			t.Fatalf("Sync() error = %v", err)
		}
		if len(result.Added) != 0 || len(result.Skipped) != 0 {
			t.Errorf("Sync() = %+v, want empty result", result)
		}
	})

	t.Run("no terms in target language returns empty lists", func(t *testing.T) {
		store := setup()
		result, err := New(store).Sync("u1", 11, "zh")
		if err != nil {
			t.Fatalf("Sync() error = %v", err)
		}
		if len(result.Added) != 0 || len(result.Skipped) != 0 {
			t.Errorf("Sync() = %+v, want empty result", result)
		}
	})

	t.Run("read failure aborts", func(t *testing.T) {
		store := setup()
		store.failReads = true
		if _, err := New(store).Sync("u1", 11, "es"); !errors.Is(err, errStore) {
			t.Errorf("Sync() error = %v, want wrapped store error", err)
		}
	})

	t.Run("write failure aborts", func(t *testing.T) {
		store := setup()
		store.failWrites = true
		if _, err := New(store).Sync("u1", 11, "es"); !errors.Is(err, errStore) {
			t.Errorf("Sync() error = %v, want wrapped store error", err)
		}
	})
}
