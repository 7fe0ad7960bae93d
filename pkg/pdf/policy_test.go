package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyIsNullMatchesComparableMarker(t *testing.T) {
	p := newPolicy(WithNullMarker(int64(42)))
	assert.True(t, p.isNull(int64(42)))
	assert.False(t, p.isNull(int64(7)))
}

func TestPolicyIsNullNeverMatchesWithoutMarker(t *testing.T) {
	p := newPolicy()
	assert.False(t, p.isNull(int64(0)))
	assert.False(t, p.isNull(nil))
}

// A dict value can legitimately be an uncomparable dynamic type (a nested
// array or dict). isNull must report false rather than let == panic, both
// when v is uncomparable and when the configured marker itself is.
func TestPolicyIsNullDoesNotPanicOnUncomparableValue(t *testing.T) {
	p := newPolicy(WithNullMarker(int64(42)))
	assert.NotPanics(t, func() {
		assert.False(t, p.isNull([]Object{{Kind: ObjInteger, Value: int64(1)}}))
	})
	assert.NotPanics(t, func() {
		assert.False(t, p.isNull(map[string]Object{"A": {Kind: ObjInteger, Value: int64(1)}}))
	})
}

func TestPolicyIsNullDoesNotPanicWhenMarkerItselfIsUncomparable(t *testing.T) {
	marker := []Object{{Kind: ObjInteger, Value: int64(1)}}
	p := newPolicy(WithNullMarker(marker))
	assert.NotPanics(t, func() {
		assert.False(t, p.isNull(marker))
	})
}
