package pdf

import (
	"log/slog"
	"reflect"
	"sync/atomic"
)

// defaultStrict is the process-wide fallback strict-mode flag consulted only
// by parsers constructed without an explicit Policy. It exists for callers
// that want a single global switch; prefer passing a Policy to NewTokenizer
// / NewStackParser when the choice should be local to one parser instance.
var defaultStrict atomic.Bool

// SetStrict sets the process-wide default strict-mode flag. Parsers built
// without WithStrict read the flag at each decision point, so the change
// applies to existing parsers as well as later ones.
func SetStrict(strict bool) { defaultStrict.Store(strict) }

// Strict reports the current process-wide default strict-mode flag.
func Strict() bool { return defaultStrict.Load() }

// Policy is the explicit, per-instance configuration consulted by
// literal_name/keyword_name-equivalent coercions and by the stack parser's
// lenient/strict decision points. A zero Policy uses the process-wide
// default strict flag and has no null marker installed.
type Policy struct {
	// strictSet/strict hold an explicit strict choice; when strictSet is
	// false, Strict() (the process-wide flag) is consulted instead.
	strictSet bool
	strict    bool

	// null is the sentinel value this policy treats as "the PDF null
	// object"; Dict construction drops entries whose value equals it. The
	// notion of a null object belongs to the layer above this
	// tokenizer/parser, so the sentinel is configurable rather than baked
	// in. nil (the default) means no value is ever treated as null.
	null interface{}

	log *slog.Logger
}

// Option configures a Policy passed to NewTokenizer / NewStackParser.
type Option func(*Policy)

// WithStrict pins this parser's strict/lenient mode, overriding the
// process-wide default.
func WithStrict(strict bool) Option {
	return func(p *Policy) {
		p.strictSet = true
		p.strict = strict
	}
}

// WithNullMarker installs the sentinel value the stack parser treats as "PDF
// null" when filtering dictionary entries.
func WithNullMarker(marker interface{}) Option {
	return func(p *Policy) { p.null = marker }
}

func newPolicy(opts ...Option) Policy {
	var p Policy
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func (p Policy) isStrict() bool {
	if p.strictSet {
		return p.strict
	}
	return Strict()
}

// isNull reports whether v equals the configured null marker. Dict values
// can legitimately carry an uncomparable dynamic type ([]Object for a
// nested array, map[string]Object for a nested dict); comparing those with
// == panics when the marker happens to share that same dynamic type, so
// comparability is checked first, and an uncomparable v is never treated as
// null, even when the marker is that same value.
func (p Policy) isNull(v interface{}) bool {
	if p.null == nil || v == nil {
		return false
	}
	if t := reflect.TypeOf(v); t == nil || !t.Comparable() {
		return false
	}
	return v == p.null
}
