package sink

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestJSONLWriter_OneDocumentPerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	w, err := NewJSONLWriter(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, w.Load(ctx, []bson.M{{"i": 1}, {"i": 2}}))
	require.NoError(t, w.Load(ctx, []bson.M{{"i": 3}}))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
		require.True(t, json.Valid(scanner.Bytes()), "line %d is not valid JSON", lines)
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, 3, lines)
}

func TestJSONLWriter_ExactDecimalText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	w, err := NewJSONLWriter(path)
	require.NoError(t, err)

	doc := bson.M{"amount": json.Number("12345678901234567890.123456789")}
	require.NoError(t, w.Load(context.Background(), []bson.M{doc}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "12345678901234567890.123456789"),
		"exact decimal text must appear verbatim, got: %s", data)
}

func TestJSONLWriter_OrderedDocumentsRenderAsObjects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	w, err := NewJSONLWriter(path)
	require.NoError(t, err)

	doc := bson.M{"ordered": bson.D{
		{Key: "z", Value: 1},
		{Key: "a", Value: bson.D{{Key: "inner", Value: "v"}}},
		{Key: "list", Value: bson.A{bson.D{{Key: "k", Value: 2}}}},
	}}
	require.NoError(t, w.Load(context.Background(), []bson.M{doc}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Equal(t, `{"ordered":{"z":1,"a":{"inner":"v"},"list":[{"k":2}]}}`, line)

	// Round-trips as a plain JSON object, not an array of key/value pairs.
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &decoded))
	_, isObject := decoded["ordered"].(map[string]interface{})
	assert.True(t, isObject)
}

func TestJSONLWriter_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	w, err := NewJSONLWriter(path)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = w.Load(ctx, []bson.M{{"i": 1}})
	assert.ErrorIs(t, err, context.Canceled)
}
