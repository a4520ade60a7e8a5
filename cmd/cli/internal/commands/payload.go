package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// loadPayload decodes a YAML or JSON request body from path. The format is
// chosen by extension; anything other than .json is read as YAML.
func loadPayload(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read payload file: %w", err)
	}

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse JSON payload: %w", err)
		}
		return nil
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse YAML payload: %w", err)
	}
	return nil
}
