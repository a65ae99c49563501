package docstore

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jcallister/backdesk/pkg/domain"
)

const (
	// Magic bytes identifying a backdesk snapshot file
	MagicBytes = "BDSK"
	// Current snapshot format version
	FormatVersion = 1
)

// FileHeader is the fixed-size header at the start of a snapshot file.
type FileHeader struct {
	Magic    [4]byte // "BDSK"
	Version  uint8   // Format version
	Flags    uint8   // Reserved for future use
	Reserved [2]byte // Reserved for future use
}

// WriteHeader writes the snapshot header to the given writer.
func WriteHeader(w io.Writer) error {
	header := FileHeader{
		Magic:   [4]byte{'B', 'D', 'S', 'K'},
		Version: FormatVersion,
	}
	return binary.Write(w, binary.LittleEndian, header)
}

// ReadHeader reads and validates the snapshot header.
func ReadHeader(r io.Reader) (*FileHeader, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicBytes {
		return nil, fmt.Errorf("invalid file format: expected %s, got %s", MagicBytes, string(header.Magic[:]))
	}
	if header.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported file version: %d", header.Version)
	}

	return &header, nil
}

// SnapshotData is the payload serialized after the header. Documents keep
// their insertion order inside each collection slice.
type SnapshotData struct {
	Collections map[string][]domain.Record `msgpack:"collections"`
	Metadata    map[string]interface{}     `msgpack:"metadata,omitempty"`
}

// NewSnapshotData creates an empty snapshot payload.
func NewSnapshotData() *SnapshotData {
	return &SnapshotData{
		Collections: make(map[string][]domain.Record),
		Metadata:    make(map[string]interface{}),
	}
}
