package spec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func Load(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("read spec: %w", err)
	}
	return Parse(path, data)
}

// Parse checks data against the schema before decoding it.
func Parse(filename string, data []byte) (Spec, error) {
	if err := ValidateSchema(filename, data); err != nil {
		return Spec{}, err
	}
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Spec{}, fmt.Errorf("parse spec: %w", err)
	}
	return s, nil
}
