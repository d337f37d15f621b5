package source

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Policy selects how watermarks are compared: it decides both the filter
// direction for the next run and how new watermark values are merged.
type Policy string

const (
	// PolicyMax filters with a non-strict lower bound ($gte). The boundary
	// document is re-read on purpose and deduplicated downstream; do not
	// tighten this to $gt or rows sharing the boundary value get lost.
	PolicyMax Policy = "max"
	// PolicyMin filters with a strict upper bound ($lt).
	PolicyMin Policy = "min"
	// PolicyCustom disables store-side filtering entirely; a downstream
	// consumer that understands the custom comparison does the filtering.
	PolicyCustom Policy = "custom"
)

// ParsePolicy maps a spec string onto a Policy. An empty string defaults
// to max, matching the usual "newest rows since last run" setup.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "max":
		return PolicyMax, nil
	case "min":
		return PolicyMin, nil
	case "custom":
		return PolicyCustom, nil
	default:
		return "", fmt.Errorf("unknown last value function %q (want max, min or custom)", s)
	}
}

// Incremental describes an incremental extraction: which field acts as the
// watermark, the last value seen by a previous run (nil on the first run),
// and the comparison policy. A nil *Incremental means full extraction.
//
// The watermark is read once when the filter is built; persisting a new
// watermark for the next run is the pipeline's job, not the extractor's.
type Incremental struct {
	CursorField string
	LastValue   interface{}
	Policy      Policy
}

// Filter translates the cursor into a store-side query filter. Exactly one
// branch fires; there is never a combination of conditions.
func (inc *Incremental) Filter() bson.M {
	if inc == nil || inc.LastValue == nil {
		return bson.M{}
	}
	switch inc.Policy {
	case PolicyMax:
		return bson.M{inc.CursorField: bson.M{"$gte": inc.LastValue}}
	case PolicyMin:
		return bson.M{inc.CursorField: bson.M{"$lt": inc.LastValue}}
	default: // PolicyCustom: load everything, filtering happens downstream
		return bson.M{}
	}
}

// lookupPath resolves a dotted field path ("meta.updated_at") through a
// decoded document, raw or sanitized. Returns nil, false when any segment is
// missing or a non-document value is hit before the path ends.
func lookupPath(doc bson.M, path string) (interface{}, bool) {
	cur := interface{}(doc)
	for _, seg := range strings.Split(path, ".") {
		v, ok := lookupField(cur, seg)
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

func lookupField(doc interface{}, key string) (interface{}, bool) {
	switch d := doc.(type) {
	case bson.M:
		v, ok := d[key]
		return v, ok
	case map[string]interface{}:
		v, ok := d[key]
		return v, ok
	case bson.D:
		for _, elem := range d {
			if elem.Key == key {
				return elem.Value, true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}
