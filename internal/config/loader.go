package config

import (
	"fmt"
	"os"

	"github.com/loadstack/mongotap/pkg/models"
)

// LoadSource reads and validates a source spec file. Validation happens
// here, before any extractor is constructed: the extractor itself trusts
// its inputs.
func LoadSource(filePath string) (*models.SourceSpec, error) {
	bytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source spec '%s': %w", filePath, err)
	}

	spec, err := models.ParseSource(bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source spec '%s': %w", filePath, err)
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}
