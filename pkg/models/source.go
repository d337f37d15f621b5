package models

import (
	"errors"
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// SourceSpec is the declarative description of one collection to extract.
// It is what a spec file contains:
//
//	connection_url: mongodb://localhost:27017
//	database: shop
//	collection: orders
//	incremental:
//	  cursor_path: updated_at
//	  last_value_func: max
type SourceSpec struct {
	ConnectionURL string           `yaml:"connection_url" json:"connection_url"`
	Database      string           `yaml:"database,omitempty" json:"database,omitempty"`
	Collection    string           `yaml:"collection" json:"collection"`
	Incremental   *IncrementalSpec `yaml:"incremental,omitempty" json:"incremental,omitempty"`
}

// IncrementalSpec configures incremental extraction. CursorPath names the
// watermark field (dotted paths reach into embedded documents).
// InitialValue seeds the very first run; LastValueFunc is one of max
// (default), min or custom.
type IncrementalSpec struct {
	CursorPath    string      `yaml:"cursor_path" json:"cursor_path"`
	InitialValue  interface{} `yaml:"initial_value,omitempty" json:"initial_value,omitempty"`
	LastValueFunc string      `yaml:"last_value_func,omitempty" json:"last_value_func,omitempty"`
}

// ParseSource unmarshals a YAML (or JSON, which YAML subsumes) spec.
func ParseSource(data []byte) (*SourceSpec, error) {
	var spec SourceSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks the fields every extraction needs. The connection URL is
// allowed to be empty here because it may come from the environment instead.
func (s *SourceSpec) Validate() error {
	if s.Collection == "" {
		return errors.New("source spec: collection is required")
	}
	if s.Incremental != nil {
		if s.Incremental.CursorPath == "" {
			return errors.New("source spec: incremental.cursor_path is required")
		}
		switch s.Incremental.LastValueFunc {
		case "", "max", "min", "custom":
		default:
			return fmt.Errorf("source spec: unknown last_value_func %q", s.Incremental.LastValueFunc)
		}
	}
	return nil
}
