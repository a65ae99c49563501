package indexes

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// indexesFile is the top-level shape of firestore.indexes.json.
type indexesFile struct {
	Indexes []map[string]interface{} `json:"indexes"`
}

// LoadFile reads a firestore.indexes.json artifact and decodes its index
// definitions.
func LoadFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read indexes file: %w", err)
	}

	var file indexesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse indexes file: %w", err)
	}

	return Decode(file.Indexes)
}

// Decode converts already-parsed definition objects into typed
// definitions. Unknown keys are ignored so that artifacts written for
// newer tooling still load; structural problems are the validator's job,
// not the decoder's.
func Decode(raw []map[string]interface{}) ([]Definition, error) {
	defs := make([]Definition, 0, len(raw))
	for i, entry := range raw {
		var def Definition
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result: &def,
		})
		if err != nil {
			return nil, fmt.Errorf("build decoder: %w", err)
		}
		if err := decoder.Decode(entry); err != nil {
			return nil, fmt.Errorf("decode index %d: %w", i, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}
