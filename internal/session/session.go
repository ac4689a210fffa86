// Package session keeps independent calculator sessions, each with its
// own stack, history and keymap mode, addressed by a generated ID.
//
// The Manager is safe for concurrent use. A Session is not: it belongs to
// the single front end driving it.
package session

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/karrick/rpncalc"
	"github.com/karrick/rpncalc/keymap"
)

// IDGenerator generates session IDs.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session IDs.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined IDs in order, for deterministic
// tests. Panics once the IDs are exhausted.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined ID.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

// Session is one user's calculator plus the keymap mode applied to the
// atoms submitted to it.
type Session struct {
	id     string
	calc   *rpncalc.Calculator
	keymap *keymap.Keymap
	mode   string
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Calculator returns the session's calculator.
func (s *Session) Calculator() *rpncalc.Calculator { return s.calc }

// Mode returns the active keymap mode.
func (s *Session) Mode() string { return s.mode }

// SetMode selects the keymap mode applied to later atoms.
func (s *Session) SetMode(mode string) error {
	if _, ok := s.keymap.Mode(mode); !ok {
		return errors.Errorf("unknown keymap mode %q", mode)
	}
	slog.Debug("keymap mode changed", "session", s.id, "from", s.mode, "to", mode)
	s.mode = mode
	return nil
}

// Keymap returns the keymap the session rewrites atoms with.
func (s *Session) Keymap() *keymap.Keymap { return s.keymap }

// Process rewrites atom through the active keymap mode and submits the
// result to the calculator.
func (s *Session) Process(atom string) rpncalc.Result {
	rewritten, err := s.keymap.Rewrite(s.mode, atom)
	if err != nil {
		return rpncalc.Result{Stack: s.calc.Stack(), Err: err}
	}
	r := s.calc.ProcessToken(rewritten)
	if r.Err != nil {
		slog.Debug("atom failed", "session", s.id, "input", atom, "submitted", rewritten, "depth", len(r.Stack), "error", r.Err)
		return r
	}
	slog.Debug("atom processed", "session", s.id, "input", atom, "submitted", rewritten, "depth", len(r.Stack))
	return r
}

// ProcessAtoms submits each atom in order and stops at the first one that
// fails. It returns the result of the last atom processed and how many
// atoms succeeded.
func (s *Session) ProcessAtoms(atoms []string) (rpncalc.Result, int) {
	r := rpncalc.Result{Stack: s.calc.Stack()}
	for i, atom := range atoms {
		if r = s.Process(atom); r.Err != nil {
			return r, i
		}
	}
	return r, len(atoms)
}

// Manager creates and tracks sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ids      IDGenerator
	keymap   *keymap.Keymap
}

// NewManager returns a Manager drawing IDs from ids and rewriting atoms
// with km. A nil ids selects UUIDv7Generator; a nil km selects the
// embedded keymap.
func NewManager(ids IDGenerator, km *keymap.Keymap) *Manager {
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	if km == nil {
		km = keymap.Default()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		ids:      ids,
		keymap:   km,
	}
}

// New creates a session with an empty stack and history in the given
// keymap mode. The setters configure its calculator.
func (m *Manager) New(mode string, setters ...rpncalc.Configurator) (*Session, error) {
	if _, ok := m.keymap.Mode(mode); !ok {
		return nil, errors.Errorf("unknown keymap mode %q", mode)
	}
	calc, err := rpncalc.NewCalculator(setters...)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create calculator")
	}
	s := &Session{
		id:     m.ids.Generate(),
		calc:   calc,
		keymap: m.keymap,
		mode:   mode,
	}

	m.mu.Lock()
	if _, ok := m.sessions[s.id]; ok {
		m.mu.Unlock()
		return nil, errors.Errorf("duplicate session id %s", s.id)
	}
	m.sessions[s.id] = s
	n := len(m.sessions)
	m.mu.Unlock()

	slog.Info("session created", "session", s.id, "mode", mode, "open", n)
	return s, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close discards the session with the given ID.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	n := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return errors.Errorf("unknown session %s", id)
	}
	slog.Info("session closed", "session", id, "depth", s.calc.Depth(), "history", len(s.calc.History()), "open", n)
	return nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// IDs returns the IDs of the open sessions, sorted.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	sort.Strings(ids)
	return ids
}
