// Package keymap rewrites the atoms a front end submits according to a
// named mode, so a single key can stand for different operators.
//
// Keymaps are written in CUE and checked against an embedded schema:
//
//	modes: hyperbolic: {
//		description: "trigonometric keys submit their hyperbolic counterparts"
//		keys: sin: "sinh"
//	}
//
// Every key must map onto a registered operator symbol. The "standard"
// mode always exists. A keymap never changes the operator registry; it
// only changes which symbol an atom carries.
package keymap

import (
	_ "embed"
	"sort"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"

	"github.com/karrick/rpncalc"
)

// Standard names the mode present in every Keymap.
const Standard = "standard"

//go:embed schema.cue
var schemaSource []byte

//go:embed default.cue
var defaultSource []byte

// Mode is one named mapping from key labels to operator symbols.
type Mode struct {
	Name        string            `json:"-"`
	Description string            `json:"description"`
	Keys        map[string]string `json:"keys"`

	labels []string // keys of Keys, longest first
}

// Keymap is an immutable set of modes.
type Keymap struct {
	modes map[string]*Mode
}

// Load compiles src as CUE, unifies it with the keymap schema, and
// verifies every key maps to a registered operator. The filename is used
// in error positions only.
func Load(filename string, src []byte) (*Keymap, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, errors.Wrap(err, "cannot compile keymap schema")
	}

	value := ctx.CompileBytes(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, errors.Wrapf(err, "cannot compile keymap %s", filename)
	}

	value = schema.LookupPath(cue.ParsePath("#Keymap")).Unify(value)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, errors.Wrapf(err, "invalid keymap %s", filename)
	}

	var decoded struct {
		Modes map[string]Mode `json:"modes"`
	}
	if err := value.Decode(&decoded); err != nil {
		return nil, errors.Wrapf(err, "cannot decode keymap %s", filename)
	}

	k := &Keymap{modes: make(map[string]*Mode, len(decoded.Modes))}
	for name, mode := range decoded.Modes {
		m := &Mode{
			Name:        name,
			Description: mode.Description,
			Keys:        make(map[string]string, len(mode.Keys)),
		}
		for label, symbol := range mode.Keys {
			label = norm.NFC.String(strings.TrimSpace(label))
			if label == "" {
				return nil, errors.Errorf("keymap %s: mode %s: empty key label", filename, name)
			}
			symbol = norm.NFC.String(symbol)
			if _, ok := rpncalc.Lookup(symbol); !ok {
				return nil, errors.Errorf("keymap %s: mode %s: key %s: unknown operator %q", filename, name, label, symbol)
			}
			m.Keys[label] = symbol
			m.labels = append(m.labels, label)
		}
		sort.Slice(m.labels, func(i, j int) bool {
			if len(m.labels[i]) != len(m.labels[j]) {
				return len(m.labels[i]) > len(m.labels[j])
			}
			return m.labels[i] < m.labels[j]
		})
		k.modes[name] = m
	}
	return k, nil
}

var loadDefault = sync.OnceValues(func() (*Keymap, error) {
	return Load("default.cue", defaultSource)
})

// Default returns the embedded keymap, holding the "standard" and
// "hyperbolic" modes. It panics if the embedded source is invalid.
func Default() *Keymap {
	k, err := loadDefault()
	if err != nil {
		panic(err)
	}
	return k
}

// Modes returns the names of every mode, sorted.
func (k *Keymap) Modes() []string {
	names := make([]string, 0, len(k.modes))
	for name := range k.modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Mode returns the named mode.
func (k *Keymap) Mode(name string) (Mode, bool) {
	m, ok := k.modes[name]
	if !ok {
		return Mode{}, false
	}
	return *m, true
}

// Rewrite returns atom as submitted under mode. An atom equal to a key
// label becomes the mapped symbol; an atom made of a numeric literal
// followed by a key label keeps its literal and swaps the label. Every
// other atom is returned unchanged.
func (k *Keymap) Rewrite(mode, atom string) (string, error) {
	m, ok := k.modes[mode]
	if !ok {
		return "", errors.Errorf("unknown keymap mode %q", mode)
	}
	atom = norm.NFC.String(atom)
	if symbol, ok := m.Keys[atom]; ok {
		return symbol, nil
	}
	for _, label := range m.labels {
		if len(atom) <= len(label) || !strings.HasSuffix(atom, label) {
			continue
		}
		literal := atom[:len(atom)-len(label)]
		if _, err := rpncalc.ParseNumber(literal); err == nil {
			return literal + m.Keys[label], nil
		}
	}
	return atom, nil
}
