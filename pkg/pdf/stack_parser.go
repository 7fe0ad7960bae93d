package pdf

// OperatorHooks lets a caller react to non-structural operators and to
// top-level object boundaries without subclassing. HandleOperator is
// called for every Operator token that is not one of the six structural
// markers; it receives only the operator and its offset, and StackParser
// exposes no accessor for the partially built items. Flush is called whenever the context stack empties back out to
// top-level, after each token. Both are no-ops by default.
type OperatorHooks interface {
	HandleOperator(pos int64, op *Operator)
	Flush()
}

type defaultHooks struct{}

func (defaultHooks) HandleOperator(int64, *Operator) {}
func (defaultHooks) Flush()                          {}

type builderKind int

const (
	kindNone builderKind = iota
	kindArray
	kindDict
	kindProc
)

func (k builderKind) String() string {
	switch k {
	case kindNone:
		return "top-level"
	case kindArray:
		return "array"
	case kindDict:
		return "dict"
	case kindProc:
		return "proc"
	default:
		return "unknown"
	}
}

type builder struct {
	startPos int64
	kind     builderKind
	items    []Object
}

// StackParser consumes a Tokenizer's output and assembles composite
// objects (List, Dict, Proc) from the six structural operators, pushing
// scalar tokens and completed composites onto whichever builder is
// innermost at the time. It is resumable the same way the Tokenizer is:
// all state lives in its fields, and Seek resets both layers together.
type StackParser struct {
	tok    *Tokenizer
	policy Policy
	hooks  OperatorHooks

	context []builder // suspended (parent) builders, outermost first
	current builder   // the innermost builder; kind == kindNone at top level

	results []Object
}

// NewStackParser constructs a StackParser reading tokens from tok. A nil
// hooks uses the no-op default.
func NewStackParser(tok *Tokenizer, hooks OperatorHooks, opts ...Option) *StackParser {
	if hooks == nil {
		hooks = defaultHooks{}
	}
	return &StackParser{
		tok:    tok,
		policy: newPolicy(opts...),
		hooks:  hooks,
	}
}

// Seek resets both the stack parser's builder state and the underlying
// tokenizer, discarding any half-built composite.
func (sp *StackParser) Seek(pos int64) error {
	if err := sp.tok.Seek(pos); err != nil {
		return err
	}
	sp.context = nil
	sp.current = builder{}
	sp.results = nil
	return nil
}

// NextObject pulls tokens until a complete top-level object is ready and
// returns it. Each token adds at most one object to the results queue, and
// NextObject stops pulling tokens as soon as the queue is non-empty.
func (sp *StackParser) NextObject() (Object, error) {
	for len(sp.results) == 0 {
		tok, err := sp.tok.NextToken()
		if err != nil {
			return Object{}, err
		}
		if err := sp.dispatch(tok); err != nil {
			return Object{}, err
		}
		if len(sp.context) == 0 && sp.current.kind == kindNone {
			sp.hooks.Flush()
		}
	}
	obj := sp.results[0]
	sp.results = sp.results[1:]
	return obj, nil
}

func (sp *StackParser) dispatch(tok Token) error {
	switch tok.Kind {
	case TokInteger, TokReal, TokBoolean, TokName, TokByteString:
		sp.pushItem(objectFromToken(tok))
		return nil
	case TokOperator:
		return sp.dispatchOperator(tok)
	default:
		// Should not occur from the tokenizer; preserve the source's
		// sequence of a defensive hook call before the fatal error.
		sp.hooks.HandleOperator(tok.Pos, nil)
		return newError(GenericParserError, tok.Pos, "stack_parser: unrecognized token kind %s", tok.Kind)
	}
}

func (sp *StackParser) dispatchOperator(tok Token) error {
	op := tok.Operator()
	switch op {
	case OpArrayBegin:
		sp.openBuilder(tok.Pos, kindArray)
		return nil
	case OpArrayEnd:
		return sp.closeBuilder(tok.Pos, kindArray, ObjList)
	case OpDictBegin:
		sp.openBuilder(tok.Pos, kindDict)
		return nil
	case OpDictEnd:
		return sp.closeBuilder(tok.Pos, kindDict, ObjDict)
	case OpProcBegin:
		sp.openBuilder(tok.Pos, kindProc)
		return nil
	case OpProcEnd:
		return sp.closeBuilder(tok.Pos, kindProc, ObjProc)
	default:
		sp.hooks.HandleOperator(tok.Pos, op)
		return nil
	}
}

func (sp *StackParser) pushItem(obj Object) {
	if sp.current.kind == kindNone {
		sp.results = append(sp.results, obj)
		return
	}
	sp.current.items = append(sp.current.items, obj)
}

func (sp *StackParser) openBuilder(pos int64, kind builderKind) {
	if sp.current.kind != kindNone {
		sp.context = append(sp.context, sp.current)
	}
	sp.current = builder{startPos: pos, kind: kind}
}

// closeBuilder closes the innermost builder against a closer that expects
// wantKind. A kind mismatch (including closing at top level, where
// current.kind is kindNone) is a TypeError: propagated in strict mode,
// silently discarded (the closer is dropped, the builder left exactly as
// it was) in lenient mode.
func (sp *StackParser) closeBuilder(pos int64, wantKind builderKind, objKind ObjectKind) error {
	if sp.current.kind != wantKind {
		if sp.policy.isStrict() {
			return newError(TypeError, pos, "stack_parser: %s-close while building %s", wantKind, sp.current.kind)
		}
		return nil
	}

	items := sp.current.items
	startPos := sp.current.startPos

	if len(sp.context) > 0 {
		sp.current = sp.context[len(sp.context)-1]
		sp.context = sp.context[:len(sp.context)-1]
	} else {
		sp.current = builder{}
	}

	if objKind == ObjDict {
		dict, err := sp.buildDict(startPos, items)
		if err != nil {
			return err
		}
		sp.pushItem(Object{Kind: ObjDict, Value: dict, Pos: startPos})
		return nil
	}
	sp.pushItem(Object{Kind: objKind, Value: items, Pos: startPos})
	return nil
}

// buildDict chops a dict builder's flat item list into key/value pairs,
// coerces each key via literalName, and drops entries whose value is the
// configured null marker. An odd-length item list is always a SyntaxError,
// regardless of strict mode.
func (sp *StackParser) buildDict(startPos int64, items []Object) (map[string]Object, error) {
	if len(items)%2 != 0 {
		return nil, newError(SyntaxError, startPos, "stack_parser: dict body has odd length %d", len(items))
	}
	pairs := chop(2, items)
	dict := make(map[string]Object, len(pairs))
	for _, pair := range pairs {
		key, err := literalName(pair[0], sp.policy)
		if err != nil {
			return nil, err
		}
		val := pair[1]
		if sp.policy.isNull(val.Value) {
			continue
		}
		dict[key] = val
	}
	return dict, nil
}
