package source

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// Extractor opens a chunked stream of sanitized documents.
type Extractor interface {
	Documents(ctx context.Context) (ChunkStream, error)
}

// ChunkStream is a single-pass, pull-based sequence of document chunks.
// NextChunk returns an empty chunk once the source is exhausted; Close must
// be called on every exit path, including early abandonment. A stream is not
// safe for concurrent consumption.
//
// CursorValues returns the raw, pre-sanitization cursor-field values of the
// most recent chunk (empty when no cursor field is configured). Watermarks
// must be merged from these, not from the sanitized documents: sanitization
// turns ObjectIDs into hex strings and decimals into json.Number, and a
// watermark that lost its BSON type filters against nothing on the next run.
type ChunkStream interface {
	NextChunk(ctx context.Context) ([]bson.M, error)
	CursorValues() []interface{}
	Close(ctx context.Context) error
}

// Loader writes one chunk of sanitized documents to a destination.
type Loader interface {
	Load(ctx context.Context, docs []bson.M) error
}
