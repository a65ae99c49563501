package docstore

import (
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/jcallister/backdesk/pkg/domain"
)

// SaveToFile writes every collection to a single compressed snapshot.
func (s *Store) SaveToFile(filename string) error {
	s.mu.RLock()
	snapshot := NewSnapshotData()
	for name, coll := range s.collections {
		docs := make([]domain.Record, 0, len(coll.order))
		for _, id := range coll.order {
			docs = append(docs, coll.docs[id].Clone())
		}
		snapshot.Collections[name] = docs
	}
	s.mu.RUnlock()

	msgpackData, err := msgpack.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode MessagePack: %w", err)
	}

	compressedData := make([]byte, lz4.CompressBlockBound(len(msgpackData)))
	var hashTable [1 << 16]int
	n, err := lz4.CompressBlock(msgpackData, compressedData, hashTable[:])
	if err != nil {
		return fmt.Errorf("failed to compress data: %w", err)
	}
	compressedData = compressedData[:n]

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := WriteHeader(file); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := file.Write(compressedData); err != nil {
		return fmt.Errorf("failed to write compressed data: %w", err)
	}
	return nil
}

// LoadFromFile replaces the store's contents with a snapshot. A missing
// file is not an error: the store simply starts empty.
func (s *Store) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if _, err := ReadHeader(file); err != nil {
		return fmt.Errorf("invalid file header: %w", err)
	}

	compressedData, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read compressed data: %w", err)
	}

	// lz4 block decompression needs the output buffer sized up front.
	decompressedData := make([]byte, len(compressedData)*10)
	n, err := lz4.UncompressBlock(compressedData, decompressedData)
	if err != nil {
		return fmt.Errorf("failed to decompress data: %w", err)
	}
	decompressedData = decompressedData[:n]

	var snapshot SnapshotData
	if err := msgpack.Unmarshal(decompressedData, &snapshot); err != nil {
		return fmt.Errorf("failed to decode MessagePack: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections = make(map[string]*collection, len(snapshot.Collections))
	for name, docs := range snapshot.Collections {
		coll := newCollection()
		for _, doc := range docs {
			id := doc.ID()
			if id == "" {
				continue
			}
			coll.docs[id] = doc
			coll.order = append(coll.order, id)
		}
		s.collections[name] = coll
	}
	return nil
}

// Save persists to the configured data file, if one was set.
func (s *Store) Save() error {
	if s.dataFile == "" {
		return nil
	}
	return s.SaveToFile(s.dataFile)
}

// Load restores from the configured data file, if one was set.
func (s *Store) Load() error {
	if s.dataFile == "" {
		return nil
	}
	return s.LoadFromFile(s.dataFile)
}
