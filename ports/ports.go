// Package ports is the I/O port registry the assembler core treats as an
// external lookup function (spec.md §1, §6): a name such as "%TEXT" maps
// to a small numeric id. Modeled on the teacher's field-constant tables
// (cpu/modes.go) — a fixed table plus a lookup helper, generalized from
// addressing-mode fields to port names.
package ports

// Registry maps uppercased port names to their numeric id.
type Registry struct {
	byName map[string]uint64
}

// Default returns the registry of well-known URCL ports.
func Default() *Registry {
	r := &Registry{byName: make(map[string]uint64, len(defaultPorts))}
	for name, id := range defaultPorts {
		r.byName[name] = id
	}
	return r
}

// defaultPorts is the standard URCL port table.
var defaultPorts = map[string]uint64{
	"CPUBUS":  0,
	"TEXT":    1,
	"NUMB":    2,
	"SUPPORTED": 3,
	"SPECIAL": 4,
	"PROFILE": 5,
	"X":       6,
	"Y":       7,
	"COLOR":   8,
	"BUFFER":  9,
	"G_SPECIAL": 10,
	"ASCII":   11,
	"CHAR5":   12,
	"CHAR6":   13,
	"ASCII7":  14,
	"UTF8":    15,
	"UTF16":   16,
	"UTF32":   17,
	"T_SPECIAL": 18,
	"INT":     19,
	"INT_SPECIAL": 20,
	"BANK_SELECT": 21,
	"ADDR":    22,
	"BUS":     23,
	"PAGE":    24,
	"S_SPECIAL": 25,
	"RNG":     26,
	"NOTE":    27,
	"INSTR":   28,
	"NLEG":    29,
	"WAIT":    30,
	"NADDR":   31,
	"DATA":    32,
	"M_SPECIAL": 33,
	"UD1":     34,
	"UD2":     35,
	"UD3":     36,
	"UD4":     37,
	"UD5":     38,
	"UD6":     39,
	"UD7":     40,
	"UD8":     41,
	"UD9":     42,
	"UD10":    43,
	"UD11":    44,
	"UD12":    45,
	"UD13":    46,
	"UD14":    47,
	"UD15":    48,
	"UD16":    49,
}

// Lookup returns the id for an upper-cased port name and whether it is
// known. Callers are responsible for upper-casing (spec.md §4.2's Port
// row: "look up text[1..] uppercased in port registry").
func (r *Registry) Lookup(name string) (uint64, bool) {
	id, ok := r.byName[name]
	return id, ok
}
