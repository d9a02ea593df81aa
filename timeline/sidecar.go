package timeline

import (
	"encoding/json"
	"fmt"
	"os"

	"shortsfactory/types"
)

// WriteSidecar saves the timeline next to the finished video so captions can
// be inspected or re-rendered without realigning.
func WriteSidecar(tl types.Timeline, path string) error {
	data, err := json.MarshalIndent(tl, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode timeline: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timeline sidecar: %w", err)
	}
	return nil
}

// ReadSidecar loads a previously written timeline sidecar.
func ReadSidecar(path string) (types.Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timeline sidecar: %w", err)
	}
	var tl types.Timeline
	if err := json.Unmarshal(data, &tl); err != nil {
		return nil, fmt.Errorf("failed to parse timeline sidecar: %w", err)
	}
	return tl, nil
}
