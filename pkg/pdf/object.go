package pdf

import (
	"fmt"
	"strconv"
	"strings"
)

// ObjectKind identifies which variant of the stack parser's output an
// Object carries. The five scalar kinds mirror TokenKind minus Operator:
// bare (non-structural) operators are never pushed onto the builder stack,
// only handed to an OperatorHooks implementation, so they never surface as
// an Object in their own right.
type ObjectKind int

const (
	ObjInteger ObjectKind = iota
	ObjReal
	ObjBoolean
	ObjName
	ObjByteString
	ObjList
	ObjDict
	ObjProc
	ObjExtension
)

func (k ObjectKind) String() string {
	switch k {
	case ObjInteger:
		return "Integer"
	case ObjReal:
		return "Real"
	case ObjBoolean:
		return "Boolean"
	case ObjName:
		return "Name"
	case ObjByteString:
		return "ByteString"
	case ObjList:
		return "List"
	case ObjDict:
		return "Dict"
	case ObjProc:
		return "Proc"
	case ObjExtension:
		return "Extension"
	default:
		return fmt.Sprintf("ObjectKind(%d)", int(k))
	}
}

// Object is the unit the stack parser emits. Pos is the starting byte
// offset of the lexeme (for composites, the offset of the opening
// delimiter). Value's dynamic type follows Kind: int64, float64, bool,
// *Name, []byte for the five scalar kinds; []Object for List and Proc;
// map[string]Object for Dict; caller-defined for Extension.
type Object struct {
	Kind  ObjectKind
	Value interface{}
	Pos   int64
}

func (o Object) Integer() int64          { return o.Value.(int64) }
func (o Object) Real() float64           { return o.Value.(float64) }
func (o Object) Boolean() bool           { return o.Value.(bool) }
func (o Object) Name() *Name             { return o.Value.(*Name) }
func (o Object) ByteString() []byte      { return o.Value.([]byte) }
func (o Object) List() []Object          { return o.Value.([]Object) }
func (o Object) Dict() map[string]Object { return o.Value.(map[string]Object) }
func (o Object) Proc() []Object          { return o.Value.([]Object) }
func (o Object) Extension() interface{}  { return o.Value }

// objectFromToken converts a scalar Token into an Object. Called only for
// the five token kinds the stack parser pushes verbatim; TokOperator is
// never passed here (see ObjectKind doc).
func objectFromToken(tok Token) Object {
	var kind ObjectKind
	switch tok.Kind {
	case TokInteger:
		kind = ObjInteger
	case TokReal:
		kind = ObjReal
	case TokBoolean:
		kind = ObjBoolean
	case TokName:
		kind = ObjName
	case TokByteString:
		kind = ObjByteString
	default:
		panic(fmt.Sprintf("pdf: objectFromToken: non-scalar token kind %s", tok.Kind))
	}
	return Object{Kind: kind, Value: tok.Value, Pos: tok.Pos}
}

func (o Object) String() string {
	switch o.Kind {
	case ObjInteger:
		return strconv.FormatInt(o.Integer(), 10)
	case ObjReal:
		return strconv.FormatFloat(o.Real(), 'g', -1, 64)
	case ObjBoolean:
		if o.Boolean() {
			return "true"
		}
		return "false"
	case ObjName:
		return o.Name().String()
	case ObjByteString:
		return fmt.Sprintf("%q", o.ByteString())
	case ObjList:
		return renderSeq("[", o.List(), "]")
	case ObjProc:
		return renderSeq("{", o.Proc(), "}")
	case ObjDict:
		return renderDict(o.Dict())
	case ObjExtension:
		return fmt.Sprintf("%v", o.Value)
	default:
		return fmt.Sprintf("<invalid object kind %d>", o.Kind)
	}
}

func renderSeq(open string, items []Object, close string) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return open + " " + strings.Join(parts, " ") + " " + close
}

func renderDict(d map[string]Object) string {
	parts := make([]string, 0, len(d))
	for k, v := range d {
		parts = append(parts, "/"+k+" "+v.String())
	}
	return "<< " + strings.Join(parts, " ") + " >>"
}

// chop groups seq into consecutive, non-overlapping windows of length n.
// A trailing partial window (len(seq) not a multiple of n) is dropped.
func chop[T any](n int, seq []T) [][]T {
	out := make([][]T, 0, len(seq)/n)
	for i := 0; i+n <= len(seq); i += n {
		out = append(out, seq[i:i+n:i+n])
	}
	return out
}

// literalName coerces obj to its textual name form: a Name's own text, or
// under lenient policy a best-effort debug rendering of anything else.
// Strict policy rejects non-Name input with TypeError.
func literalName(obj Object, policy Policy) (string, error) {
	if obj.Kind == ObjName {
		return obj.Name().Text(), nil
	}
	if policy.isStrict() {
		return "", newError(TypeError, obj.Pos, "literal_name: expected Name, got %s", obj.Kind)
	}
	return obj.String(), nil
}

// keywordName is literalName's symmetric counterpart for Operators. It
// takes a raw Token (the shape an OperatorHooks implementation receives)
// rather than an Object, since bare operators never become Objects.
func keywordName(tok Token, policy Policy) (string, error) {
	if tok.Kind == TokOperator {
		return tok.Operator().String(), nil
	}
	if policy.isStrict() {
		return "", newError(TypeError, tok.Pos, "keyword_name: expected Operator, got %s", tok.Kind)
	}
	return tok.String(), nil
}
