package leaderboard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Store loads and saves leaderboard entries.
type Store interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
}

// FileStore keeps the board in a msgpack file.
type FileStore struct {
	Path string
}

type boardFile struct {
	Entries []Entry `msgpack:"entries"`
}

// Load reads the stored entries. A missing file is an empty board.
func (s FileStore) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read leaderboard %s: %w", s.Path, err)
	}

	var f boardFile
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode leaderboard %s: %w", s.Path, err)
	}
	return f.Entries, nil
}

// Save writes the entries to a temporary file and renames it into place.
func (s FileStore) Save(entries []Entry) error {
	data, err := msgpack.Marshal(&boardFile{Entries: entries})
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".leaderboard-*")
	if err != nil {
		return fmt.Errorf("save leaderboard %s: %w", s.Path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save leaderboard %s: %w", s.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save leaderboard %s: %w", s.Path, err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("save leaderboard %s: %w", s.Path, err)
	}
	return nil
}

// Open builds a board from a store. A nil store gives an empty board.
func Open(store Store, size int) (*Board, error) {
	b := New(size)
	if store == nil {
		return b, nil
	}
	entries, err := store.Load()
	if err != nil {
		return b, err
	}
	b.replace(entries)
	return b, nil
}

// Persist saves the board to the store. A nil store is a no-op.
func (b *Board) Persist(store Store) error {
	if store == nil {
		return nil
	}
	return store.Save(b.Entries())
}

// StoreAt returns a file store at path, or nil when path is empty.
func StoreAt(path string) Store {
	if path == "" {
		return nil
	}
	return FileStore{Path: path}
}
