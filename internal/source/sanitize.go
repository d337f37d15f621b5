package source

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SanitizeDocument returns a JSON-safe copy of a decoded document. ObjectIDs
// become their canonical hex string and Decimal128 values become json.Number
// holding the exact decimal text, so no precision is lost to a float at any
// point. Everything else keeps its shape: same keys, same element order,
// same sequence lengths. The input is never mutated.
//
// Sanitizing an already-sanitized document is a no-op.
func SanitizeDocument(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for key, value := range doc {
		out[key] = sanitizeValue(value)
	}
	return out
}

// sanitizeValue is the recursive worker behind SanitizeDocument. It walks
// mappings and sequences depth-first; recursion handles arbitrary nesting,
// so sequences-of-sequences need no special casing. Scalars outside the two
// BSON-specific kinds pass through unchanged, including kinds this code does
// not know about: rejecting those is deferred to whoever serializes the
// record later.
func sanitizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case bson.M:
		return SanitizeDocument(v)
	case map[string]interface{}:
		return SanitizeDocument(bson.M(v))
	case bson.D:
		// Ordered document form: rebuild preserving element order.
		out := make(bson.D, 0, len(v))
		for _, elem := range v {
			out = append(out, bson.E{Key: elem.Key, Value: sanitizeValue(elem.Value)})
		}
		return out
	case bson.A:
		return bson.A(sanitizeSlice(v))
	case []interface{}:
		return sanitizeSlice(v)
	case primitive.ObjectID:
		return v.Hex()
	case primitive.Decimal128:
		return json.Number(v.String())
	default:
		return value
	}
}

func sanitizeSlice(items []interface{}) []interface{} {
	out := make([]interface{}, len(items))
	for i, item := range items {
		out[i] = sanitizeValue(item)
	}
	return out
}
