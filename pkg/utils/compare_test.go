package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCompare_Numbers(t *testing.T) {
	cases := []struct {
		a, b interface{}
		want int
	}{
		{1, 2, -1},
		{int64(5), int32(5), 0},
		{3.5, 3, 1},
		{json.Number("10.5"), 10, 1},
		{json.Number("2"), int64(3), -1},
	}
	for _, tc := range cases {
		got, err := Compare(tc.a, tc.b)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%v vs %v", tc.a, tc.b)
	}
}

func TestCompare_Strings(t *testing.T) {
	got, err := Compare("2024-01-01", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	// ObjectID hex ordering matches creation order within a second.
	a := primitive.NewObjectIDFromTimestamp(time.Unix(100, 0))
	b := primitive.NewObjectIDFromTimestamp(time.Unix(200, 0))
	got, err = Compare(a, b)
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	got, err = Compare(a.Hex(), b)
	require.NoError(t, err)
	assert.Equal(t, -1, got)
}

func TestCompare_Times(t *testing.T) {
	earlier := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	got, err := Compare(earlier, later)
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	got, err = Compare(primitive.NewDateTimeFromTime(later), earlier)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = Compare(primitive.NewDateTimeFromTime(earlier), primitive.NewDateTimeFromTime(earlier))
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestCompare_ObjectIDsStayTyped(t *testing.T) {
	a := primitive.NewObjectIDFromTimestamp(time.Unix(100, 0))
	b := primitive.NewObjectIDFromTimestamp(time.Unix(200, 0))

	got, err := Compare(a, b)
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	got, err = Compare(b, a)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = Compare(a, a)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestCompare_Decimal128(t *testing.T) {
	small, err := primitive.ParseDecimal128("10.50")
	require.NoError(t, err)
	large, err := primitive.ParseDecimal128("99.90")
	require.NoError(t, err)

	got, err := Compare(small, large)
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	got, err = Compare(large, int64(50))
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	equal, err := primitive.ParseDecimal128("10.5")
	require.NoError(t, err)
	got, err = Compare(small, equal)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestCompare_DecimalsBeyondFloatPrecision(t *testing.T) {
	// These differ only past float64's 15-17 significant digits; a float
	// comparison would call them equal.
	a := json.Number("12345678901234567890.1")
	b := json.Number("12345678901234567890.2")

	got, err := Compare(a, b)
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	da, err := primitive.ParseDecimal128("12345678901234567890.1")
	require.NoError(t, err)
	db, err := primitive.ParseDecimal128("12345678901234567890.2")
	require.NoError(t, err)
	got, err = Compare(db, da)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestCompare_MismatchedKinds(t *testing.T) {
	_, err := Compare("abc", 5)
	assert.Error(t, err)

	_, err = Compare(time.Now(), "2024-01-01")
	assert.Error(t, err)

	_, err = Compare(struct{}{}, struct{}{})
	assert.Error(t, err)
}
