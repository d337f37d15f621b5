package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compare orders two watermark values: -1 when a < b, 0 when equal, 1 when
// a > b. It covers the kinds a cursor field realistically holds, which are
// numbers, exact decimals (Decimal128 and json.Number), strings (including
// ObjectID hex), ObjectIDs and timestamps in their several decoded forms,
// and returns an error for anything else or for mismatched kinds.
func Compare(a, b interface{}) (int, error) {
	if ta, ok := toTime(a); ok {
		tb, ok := toTime(b)
		if !ok {
			return 0, fmt.Errorf("cannot compare %T with %T", a, b)
		}
		return ta.Compare(tb), nil
	}

	if oa, ok := a.(primitive.ObjectID); ok {
		if ob, ok := b.(primitive.ObjectID); ok {
			return bytes.Compare(oa[:], ob[:]), nil
		}
	}

	// Exact decimals never go through a float: Decimal128 holds more digits
	// than float64 can distinguish, so ordering is done on big.Rat.
	if isExactDecimal(a) || isExactDecimal(b) {
		ra, aOK := toRat(a)
		rb, bOK := toRat(b)
		if !aOK || !bOK {
			return 0, fmt.Errorf("cannot compare %T with %T", a, b)
		}
		return ra.Cmp(rb), nil
	}

	if fa, ok := toFloat64(a); ok {
		fb, ok := toFloat64(b)
		if !ok {
			return 0, fmt.Errorf("cannot compare %T with %T", a, b)
		}
		switch {
		case fa < fb:
			return -1, nil
		case fa > fb:
			return 1, nil
		default:
			return 0, nil
		}
	}

	sa, aOK := toString(a)
	sb, bOK := toString(b)
	if aOK && bOK {
		return strings.Compare(sa, sb), nil
	}

	return 0, fmt.Errorf("cannot compare %T with %T", a, b)
}

func toTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0), true
	default:
		return time.Time{}, false
	}
}

func isExactDecimal(v interface{}) bool {
	switch v.(type) {
	case primitive.Decimal128, json.Number:
		return true
	default:
		return false
	}
}

// toRat parses a value into an exact rational. Fails for Decimal128 NaN and
// infinities, which have no place in an ordered watermark anyway.
func toRat(v interface{}) (*big.Rat, bool) {
	switch n := v.(type) {
	case primitive.Decimal128:
		return new(big.Rat).SetString(n.String())
	case json.Number:
		return new(big.Rat).SetString(n.String())
	default:
		f, ok := toFloat64(v)
		if !ok {
			return nil, false
		}
		r := new(big.Rat).SetFloat64(f)
		return r, r != nil
	}
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func toString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case primitive.ObjectID:
		return s.Hex(), true
	default:
		return "", false
	}
}
