package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource_YAML(t *testing.T) {
	spec, err := ParseSource([]byte(`
connection_url: mongodb://localhost:27017
database: shop
collection: orders
incremental:
  cursor_path: updated_at
  initial_value: "2024-01-01"
  last_value_func: max
`))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", spec.ConnectionURL)
	assert.Equal(t, "shop", spec.Database)
	assert.Equal(t, "orders", spec.Collection)
	require.NotNil(t, spec.Incremental)
	assert.Equal(t, "updated_at", spec.Incremental.CursorPath)
	assert.Equal(t, "2024-01-01", spec.Incremental.InitialValue)
	assert.Equal(t, "max", spec.Incremental.LastValueFunc)
	assert.NoError(t, spec.Validate())
}

func TestParseSource_MinimalSpec(t *testing.T) {
	spec, err := ParseSource([]byte("collection: users\n"))
	require.NoError(t, err)

	assert.Equal(t, "users", spec.Collection)
	assert.Nil(t, spec.Incremental)
	assert.NoError(t, spec.Validate())
}

func TestSourceSpec_Validate(t *testing.T) {
	cases := []struct {
		name    string
		spec    SourceSpec
		wantErr bool
	}{
		{
			name:    "missing collection",
			spec:    SourceSpec{ConnectionURL: "mongodb://x"},
			wantErr: true,
		},
		{
			name:    "incremental without cursor path",
			spec:    SourceSpec{Collection: "c", Incremental: &IncrementalSpec{}},
			wantErr: true,
		},
		{
			name:    "unknown last value func",
			spec:    SourceSpec{Collection: "c", Incremental: &IncrementalSpec{CursorPath: "f", LastValueFunc: "median"}},
			wantErr: true,
		},
		{
			name: "valid min policy",
			spec: SourceSpec{Collection: "c", Incremental: &IncrementalSpec{CursorPath: "f", LastValueFunc: "min"}},
		},
		{
			name: "default policy",
			spec: SourceSpec{Collection: "c", Incremental: &IncrementalSpec{CursorPath: "f"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.spec.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
