// Package sink provides destination writers for extracted document chunks.
package sink

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/bson"
)

// JSONLWriter appends one JSON document per line to a file. json.Number
// values produced by sanitization serialize verbatim, so exact decimals stay
// exact on disk.
type JSONLWriter struct {
	file *os.File
	buf  *bufio.Writer
	enc  *json.Encoder
}

// NewJSONLWriter creates (truncating) the output file.
func NewJSONLWriter(path string) (*JSONLWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file '%s': %w", path, err)
	}
	buf := bufio.NewWriter(f)
	return &JSONLWriter{file: f, buf: buf, enc: json.NewEncoder(buf)}, nil
}

// Load writes one chunk. Encoder.Encode terminates each document with a
// newline, which is exactly the JSONL framing.
func (w *JSONLWriter) Load(ctx context.Context, docs []bson.M) error {
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.enc.Encode(jsonCompat(doc)); err != nil {
			return fmt.Errorf("encoding document: %w", err)
		}
	}
	return w.buf.Flush()
}

// Close flushes buffered output and closes the file.
func (w *JSONLWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// jsonCompat rewraps BSON container types so encoding/json renders them the
// way a JSON consumer expects. bson.D would otherwise marshal as an array of
// {"Key":...,"Value":...} structs; orderedDoc turns it into a plain object
// with element order kept.
func jsonCompat(v interface{}) interface{} {
	switch t := v.(type) {
	case bson.D:
		return orderedDoc(t)
	case bson.M:
		return compatMap(t)
	case map[string]interface{}:
		return compatMap(t)
	case bson.A:
		return compatSlice(t)
	case []interface{}:
		return compatSlice(t)
	default:
		return v
	}
}

func compatMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = jsonCompat(v)
	}
	return out
}

func compatSlice(items []interface{}) []interface{} {
	out := make([]interface{}, len(items))
	for i, item := range items {
		out[i] = jsonCompat(item)
	}
	return out
}

// orderedDoc marshals a bson.D as a JSON object preserving element order.
type orderedDoc bson.D

func (d orderedDoc) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, elem := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(elem.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(jsonCompat(elem.Value))
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
