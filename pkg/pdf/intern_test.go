package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternNameIdentityForEqualPayloads(t *testing.T) {
	a := InternName("Type")
	b := InternName("Type")
	assert.Same(t, a, b)

	c := InternNameBytes([]byte("Type"))
	assert.Same(t, a, c)

	assert.NotSame(t, a, InternName("Length"))
}

func TestInternOperatorIdentityForEqualPayloads(t *testing.T) {
	a := InternOperator([]byte("endobj"))
	b := InternOperator([]byte("endobj"))
	assert.Same(t, a, b)
	assert.NotSame(t, a, InternOperator([]byte("endstream")))
}

func TestStructuralOperatorsInternedFromDocumentedPayloads(t *testing.T) {
	assert.Equal(t, "[", OpArrayBegin.String())
	assert.Equal(t, "]", OpArrayEnd.String())
	assert.Equal(t, "<<", OpDictBegin.String())
	assert.Equal(t, ">>", OpDictEnd.String())
	assert.Equal(t, "{", OpProcBegin.String())
	assert.Equal(t, "}", OpProcEnd.String())

	assert.Same(t, OpArrayBegin, InternOperator([]byte("[")))
	assert.Same(t, OpArrayEnd, InternOperator([]byte("]")))
	assert.Same(t, OpDictBegin, InternOperator([]byte("<<")))
	assert.Same(t, OpDictEnd, InternOperator([]byte(">>")))
	assert.Same(t, OpProcBegin, InternOperator([]byte("{")))
	assert.Same(t, OpProcEnd, InternOperator([]byte("}")))
}

func TestNameAndOperatorDoNotAlias(t *testing.T) {
	// "Length" interned via the Name table and "Length" interned via the
	// Operator table must never be interchangeable, even though their
	// payloads happen to collide.
	n := InternName("Length")
	o := InternOperator([]byte("Length"))
	assert.Equal(t, "Length", n.Text())
	assert.Equal(t, "Length", o.String())
	assert.NotEqual(t, n.String(), o.String()) // "/Length" vs "Length"
}
