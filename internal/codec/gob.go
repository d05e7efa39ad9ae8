package codec

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/fathomdata/larder/pkg/types"
)

// envelope wraps arbitrary values so gob can round-trip them through an
// interface field. Non-builtin value types must be registered with
// RegisterType before use.
type envelope struct {
	Value any
}

// RegisterType makes a concrete type encodable inside gob envelopes.
// Frames are pre-registered.
func RegisterType(value any) {
	gob.Register(value)
}

// parseGob decodes the platform-native object serialization.
func parseGob(data []byte, _ types.CatalogEntry) (any, error) {
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return nil, fmt.Errorf("parsing gob: %w", err)
	}
	return env.Value, nil
}

// writeGob encodes an arbitrary value as gob.
func writeGob(value any, _ types.CatalogEntry) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(envelope{Value: value}); err != nil {
		return nil, fmt.Errorf("writing gob: %w", err)
	}
	return buf.Bytes(), nil
}
