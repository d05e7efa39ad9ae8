package codec

import (
	"encoding/json"
	"fmt"

	"github.com/fathomdata/larder/pkg/types"
)

// parseJSON decodes JSON. An object shaped like a Frame (columns plus rows)
// comes back as *types.Frame; anything else decodes generically.
func parseJSON(data []byte, _ types.CatalogEntry) (any, error) {
	var frame types.Frame
	if err := json.Unmarshal(data, &frame); err == nil && frame.Columns != nil {
		return &frame, nil
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}
	return value, nil
}

// writeJSON serializes any JSON-marshalable value, indented for diffability.
func writeJSON(value any, _ types.CatalogEntry) ([]byte, error) {
	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("writing json: %w", err)
	}
	return append(b, '\n'), nil
}
