package source

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ChunkSize bounds how many documents a single chunk may hold. Chunks exist
// only to cap the consumer's in-flight memory; their boundaries carry no
// meaning and callers must not rely on where they fall.
const ChunkSize = 10000

// CollectionExtractor reads one collection as a chunked stream of sanitized
// documents, optionally bounded by an incremental cursor. It trusts its
// construction inputs: the connection is assumed live and the incremental
// descriptor pre-validated by the caller.
//
// Store faults propagate unchanged. The extractor does no retrying and no
// partial-result recovery; that policy belongs to the surrounding pipeline,
// so it is not duplicated in every connector.
type CollectionExtractor struct {
	collection  *mongo.Collection
	incremental *Incremental
}

// NewCollectionExtractor builds an extractor over the given collection.
// incremental may be nil for a full extraction.
func NewCollectionExtractor(collection *mongo.Collection, incremental *Incremental) *CollectionExtractor {
	return &CollectionExtractor{collection: collection, incremental: incremental}
}

// Filter exposes the store-side filter the next Documents call will use.
func (e *CollectionExtractor) Filter() bson.M {
	return e.incremental.Filter()
}

// Documents opens a cursor over the collection with the incremental filter
// applied and returns the resulting stream. No sort order is imposed: the
// incremental semantics rely on the filter, not on ordering.
func (e *CollectionExtractor) Documents(ctx context.Context) (ChunkStream, error) {
	cur, err := e.collection.Find(ctx, e.incremental.Filter())
	if err != nil {
		return nil, err
	}
	stream := &DocumentStream{cursor: cur, chunkSize: ChunkSize}
	if e.incremental != nil {
		stream.cursorField = e.incremental.CursorField
	}
	return stream, nil
}

// documentCursor is the slice of *mongo.Cursor the stream actually needs.
// It exists so stream behavior is testable without a running server.
type documentCursor interface {
	Next(ctx context.Context) bool
	Decode(val interface{}) error
	Err() error
	Close(ctx context.Context) error
}

// DocumentStream lazily decodes, sanitizes and regroups documents from an
// underlying store cursor into chunks of at most ChunkSize. It holds one
// chunk at a time and never materializes the full result set.
type DocumentStream struct {
	cursor       documentCursor
	chunkSize    int
	cursorField  string
	cursorValues []interface{}
}

// NextChunk pulls up to chunkSize documents from the cursor. The final chunk
// may be shorter; an empty chunk means the stream is exhausted. Decode and
// cursor faults surface as-is and poison the stream.
//
// Cursor-field values are captured from each document before sanitization so
// they keep their BSON types for watermark merging.
func (s *DocumentStream) NextChunk(ctx context.Context) ([]bson.M, error) {
	var chunk []bson.M
	s.cursorValues = nil
	for len(chunk) < s.chunkSize && s.cursor.Next(ctx) {
		var doc bson.M
		if err := s.cursor.Decode(&doc); err != nil {
			return nil, err
		}
		if s.cursorField != "" {
			if v, ok := lookupPath(doc, s.cursorField); ok && v != nil {
				s.cursorValues = append(s.cursorValues, v)
			}
		}
		chunk = append(chunk, SanitizeDocument(doc))
	}
	if err := s.cursor.Err(); err != nil {
		return nil, err
	}
	return chunk, nil
}

// CursorValues returns the raw cursor-field values of the most recent chunk.
func (s *DocumentStream) CursorValues() []interface{} {
	return s.cursorValues
}

// Close releases the underlying cursor. Safe to call after exhaustion or
// mid-stream when the consumer abandons extraction early.
func (s *DocumentStream) Close(ctx context.Context) error {
	return s.cursor.Close(ctx)
}
