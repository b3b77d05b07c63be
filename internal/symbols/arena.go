package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// ScopeID indexes the arena. The zero value refers to no scope.
type ScopeID uint32

// NoScopeID marks the absence of a scope reference.
const NoScopeID ScopeID = 0

func (id ScopeID) IsValid() bool { return id != NoScopeID }

// Scopes stores all allocated scopes in a compact slice-based arena.
type Scopes struct {
	data []Scope
}

// NewScopes creates an arena with optional capacity hint.
func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 16
	}
	return &Scopes{
		data: make([]Scope, 1, capacity+1), // index 0 reserved for NoScopeID
	}
}

// New allocates a new scope under parent and returns its ID.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, name string, line uint32) ScopeID {
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("scopes arena overflow: %w", err))
	}
	id := ScopeID(value)
	s.data = append(s.data, Scope{
		Kind:      kind,
		Parent:    parent,
		Name:      name,
		Line:      line,
		Variables: make(map[string]*Variable),
	})
	if parentScope := s.Get(parent); parentScope != nil {
		parentScope.Children = append(parentScope.Children, id)
	}
	return id
}

// Get returns the scope pointer or nil if ID is invalid.
// The pointer is invalidated by the next New.
func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Len reports total number of scopes excluding the sentinel.
func (s *Scopes) Len() int { return len(s.data) - 1 }

// Data exposes the underlying slice without the sentinel.
func (s *Scopes) Data() []Scope {
	if len(s.data) <= 1 {
		return nil
	}
	return s.data[1:]
}

// Chain returns id followed by its ancestors, innermost first.
func (s *Scopes) Chain(id ScopeID) []ScopeID {
	var out []ScopeID
	for cur := id; cur.IsValid(); {
		sc := s.Get(cur)
		if sc == nil {
			break
		}
		out = append(out, cur)
		cur = sc.Parent
	}
	return out
}

// OnChain reports whether target is id or one of its ancestors.
func (s *Scopes) OnChain(id, target ScopeID) bool {
	for _, cur := range s.Chain(id) {
		if cur == target {
			return true
		}
	}
	return false
}

// EnclosingMethod returns the nearest method scope on the chain of id.
func (s *Scopes) EnclosingMethod(id ScopeID) ScopeID {
	for _, cur := range s.Chain(id) {
		if s.Get(cur).Kind == ScopeMethod {
			return cur
		}
	}
	return NoScopeID
}
