package pdf

import "sync"

// Name is an interned PostScript literal name, written /Ident in source.
// Two Names constructed from equal payloads through the same table are the
// same pointer, so identity comparison (==) substitutes for payload
// equality.
type Name struct {
	payload string
}

// String renders the name the way PDF source would, with its leading slash.
func (n *Name) String() string {
	if n == nil {
		return "/"
	}
	return "/" + n.payload
}

// Text returns the name's textual form: its payload as supplied at intern
// time (already UTF-8 when that's how it was interned; see InternName).
func (n *Name) Text() string { return n.payload }

// Operator is an interned PostScript operator/keyword mnemonic, interned in
// a table separate from Name so that "/Foo" and bare "Foo" never alias.
type Operator struct {
	payload string
}

func (o *Operator) String() string { return o.payload }
func (o *Operator) Bytes() []byte  { return []byte(o.payload) }

// symbolTable canonicalizes payloads to unique *Name or *Operator instances.
// Safe for concurrent use: intern is the only mutator and is guarded by a
// RWMutex, with a fast read-only path for the (overwhelmingly common) case
// where the payload has already been observed.
type symbolTable[T any] struct {
	mu        sync.RWMutex
	table     map[string]*T
	construct func(string) *T
}

func newSymbolTable[T any](construct func(string) *T) *symbolTable[T] {
	return &symbolTable[T]{table: map[string]*T{}, construct: construct}
}

func (s *symbolTable[T]) intern(payload string) *T {
	s.mu.RLock()
	if v, ok := s.table[payload]; ok {
		s.mu.RUnlock()
		return v
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.table[payload]; ok {
		return v
	}
	v := s.construct(payload)
	s.table[payload] = v
	return v
}

var nameTable = newSymbolTable(func(payload string) *Name { return &Name{payload: payload} })
var operatorTable = newSymbolTable(func(payload string) *Operator { return &Operator{payload: payload} })

// InternName returns the unique Name for this payload, whether it arrived as
// decoded text or as raw bytes reinterpreted losslessly as a string; the
// table keys on exactly the string given, with no coercion between the two.
func InternName(payload string) *Name { return nameTable.intern(payload) }

// InternNameBytes interns a name from raw bytes, using the bytes themselves
// (reinterpreted as a Go string, which is just a byte slice view) as the key.
func InternNameBytes(payload []byte) *Name { return InternName(string(payload)) }

// InternOperator returns the unique Operator for this byte-string payload.
func InternOperator(payload []byte) *Operator { return operatorTable.intern(string(payload)) }

// Pre-interned structural operators. Structural equality with these six
// pointers drives composite-object recognition in the stack parser.
var (
	OpArrayBegin = InternOperator([]byte("["))
	OpArrayEnd   = InternOperator([]byte("]"))
	OpDictBegin  = InternOperator([]byte("<<"))
	OpDictEnd    = InternOperator([]byte(">>"))
	OpProcBegin  = InternOperator([]byte("{"))
	OpProcEnd    = InternOperator([]byte("}"))
)
