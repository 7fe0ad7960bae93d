package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStackParser(t *testing.T, input string, hooks OperatorHooks, opts ...Option) *StackParser {
	t.Helper()
	bc, err := NewBufferCursor(bytes.NewReader([]byte(input)))
	require.NoError(t, err)
	return NewStackParser(NewTokenizer(bc), hooks, opts...)
}

func collectObjects(t *testing.T, sp *StackParser) ([]Object, error) {
	t.Helper()
	var out []Object
	for {
		obj, err := sp.NextObject()
		if err != nil {
			return out, err
		}
		out = append(out, obj)
	}
}

func TestStackParserScenarioFromSpec(t *testing.T) {
	sp := newStackParser(t, `123 3.14 true /Name (hi) <4869> [1 2]`, nil)
	objs, err := collectObjects(t, sp)
	require.Error(t, err) // UnexpectedEOF terminates the scan

	require.Len(t, objs, 7)
	assert.Equal(t, int64(123), objs[0].Integer())
	assert.Equal(t, 3.14, objs[1].Real())
	assert.Equal(t, true, objs[2].Boolean())
	assert.Equal(t, "Name", objs[3].Name().Text())
	assert.Equal(t, "hi", string(objs[4].ByteString()))
	assert.Equal(t, "Hi", string(objs[5].ByteString()))

	require.Equal(t, ObjList, objs[6].Kind)
	list := objs[6].List()
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].Integer())
	assert.Equal(t, int64(2), list[1].Integer())
}

func TestStackParserDict(t *testing.T) {
	sp := newStackParser(t, `<< /Key 1 /Flag true >>`, nil)
	obj, err := sp.NextObject()
	require.NoError(t, err)
	require.Equal(t, ObjDict, obj.Kind)

	dict := obj.Dict()
	require.Contains(t, dict, "Key")
	require.Contains(t, dict, "Flag")
	assert.Equal(t, int64(1), dict["Key"].Integer())
	assert.Equal(t, true, dict["Flag"].Boolean())
}

func TestStackParserDictOddLengthIsSyntaxError(t *testing.T) {
	sp := newStackParser(t, `<< /K 1 /V >>`, nil)
	_, err := sp.NextObject()
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, SyntaxError, perr.Kind)
}

func TestStackParserDictDropsNullMarkerValues(t *testing.T) {
	// Integer(2), the parsed value of /B, is configured as the null
	// marker, so /B must be absent from the resulting dict entirely.
	sp := newStackParser(t, `<< /A 1 /B 2 >>`, nil, WithNullMarker(int64(2)))
	obj, err := sp.NextObject()
	require.NoError(t, err)
	dict := obj.Dict()
	assert.Equal(t, int64(1), dict["A"].Integer())
	assert.NotContains(t, dict, "B")
}

func TestStackParserDictWithNestedArrayValueDoesNotPanicUnderNullMarker(t *testing.T) {
	// /B's value is a nested array (an uncomparable dynamic type). A null
	// marker is configured but never matches it; buildDict must not panic
	// comparing the two.
	sp := newStackParser(t, `<< /A 1 /B [1 2] >>`, nil, WithNullMarker(int64(99)))
	var obj Object
	var err error
	assert.NotPanics(t, func() {
		obj, err = sp.NextObject()
	})
	require.NoError(t, err)
	dict := obj.Dict()
	assert.Equal(t, int64(1), dict["A"].Integer())
	require.Contains(t, dict, "B")
	assert.Equal(t, int64(1), dict["B"].List()[0].Integer())
}

func TestStackParserArrayCloseMismatchLenientDropsTrailingCloser(t *testing.T) {
	sp := newStackParser(t, `[ 1 2 ] extra ]`, nil)
	objs, err := collectObjects(t, sp)
	require.Error(t, err)

	require.Len(t, objs, 1)
	require.Equal(t, ObjList, objs[0].Kind)
	list := objs[0].List()
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].Integer())
	assert.Equal(t, int64(2), list[1].Integer())
}

func TestStackParserArrayCloseMismatchStrictPropagates(t *testing.T) {
	sp := newStackParser(t, `[ 1 2 ] extra ]`, nil, WithStrict(true))

	first, err := sp.NextObject()
	require.NoError(t, err)
	require.Equal(t, ObjList, first.Kind)

	_, err = sp.NextObject()
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, TypeError, perr.Kind)
}

type recordingHooks struct {
	operators []string
	flushes   int
}

func (h *recordingHooks) HandleOperator(pos int64, op *Operator) {
	if op != nil {
		h.operators = append(h.operators, op.String())
	} else {
		h.operators = append(h.operators, "<nil>")
	}
}

func (h *recordingHooks) Flush() { h.flushes++ }

func TestStackParserHandleOperatorHook(t *testing.T) {
	hooks := &recordingHooks{}
	sp := newStackParser(t, `1 0 R endobj`, hooks)

	objs, err := collectObjects(t, sp)
	require.Error(t, err)
	require.Len(t, objs, 2) // the two Integers; R and endobj never become Objects

	assert.Equal(t, []string{"R", "endobj"}, hooks.operators)
	assert.True(t, hooks.flushes > 0)
}

func TestStackParserSeekResetsBuilderState(t *testing.T) {
	sp := newStackParser(t, `[1 2] [3 4]`, nil)

	first, err := sp.NextObject()
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.List()[0].Integer())

	require.NoError(t, sp.Seek(0))
	again, err := sp.NextObject()
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.List()[0].Integer())
}
