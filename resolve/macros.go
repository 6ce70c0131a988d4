package resolve

import "github.com/halfdan-ek/urcasm/token"

// maxMacroDepth bounds recursive @define resolution so a cyclic
// `@define A B` / `@define B A` cannot hang the parser (spec.md §9).
const maxMacroDepth = 64

// macroStore is a name→token mapping for `@define` identifiers, plus the
// fixed table of built-in numeric macros (spec.md §4.6).
type macroStore struct {
	user map[string]token.Token
}

func newMacroStore() *macroStore {
	return &macroStore{user: make(map[string]token.Token)}
}

// define stores tok under name, overwriting any prior binding — the
// source places no restriction on redefining a `@define` name.
func (m *macroStore) define(name string, tok token.Token) {
	m.user[name] = tok
}

// lookup returns the token stored for name, if any. It never advances
// a cursor and never itself recurses — callers (classify) are
// responsible for the recursive re-classification, bounded by depth.
func (m *macroStore) lookup(name string) (token.Token, bool) {
	t, ok := m.user[name]
	return t, ok
}

// builtinMacro evaluates one of the fixed `@name` numeric macros. Unknown
// names return ok=false so the caller can classify the macro as Unknown.
func builtinMacro(name string, bits uint64, minHeap uint64) (uint64, bool) {
	switch name {
	case "max":
		return ^uint64(0), true
	case "msb":
		return uint64(1) << 63, true
	case "smax":
		return uint64(int64(^uint64(0) >> 1)), true
	case "bits":
		return bits, true
	case "minheap":
		return minHeap, true
	default:
		return 0, false
	}
}
