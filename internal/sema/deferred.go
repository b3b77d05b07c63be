package sema

import "sjavac/internal/symbols"

// PendingKind tells the replay how to treat a queued item.
type PendingKind uint8

const (
	PendingAssignment PendingKind = iota + 1
	PendingDeclaration
	PendingCondition
)

func (k PendingKind) String() string {
	switch k {
	case PendingAssignment:
		return "assignment"
	case PendingDeclaration:
		return "declaration"
	case PendingCondition:
		return "condition"
	default:
		return "unknown"
	}
}

// Pending is a reference the scan could not decide.
//
// For assignments Target is set when the target itself was not found and
// Var is set when only the source token was unresolved. For declarations
// Var is the provisionally initialized variable. Source is set when Token
// named a visible variable that was itself still provisional.
type Pending struct {
	Kind   PendingKind
	Text   string
	Target string
	Var    *symbols.Variable
	Token  string
	Source *symbols.Variable
	Origin symbols.ScopeID
	Line   uint32
}

// Call is a method invocation recorded during the scan.
type Call struct {
	Name   string
	Args   string
	Text   string
	Origin symbols.ScopeID
	Line   uint32
}

// Queues are the work lists handed from Scan to Replay.
type Queues struct {
	Assignments  []Pending
	Declarations []Pending
	Conditions   []Pending
	Calls        []Call
}

// Deferred counts queued references, calls excluded.
func (q *Queues) Deferred() int {
	return len(q.Assignments) + len(q.Declarations) + len(q.Conditions)
}

func (q *Queues) push(p Pending) {
	switch p.Kind {
	case PendingAssignment:
		q.Assignments = append(q.Assignments, p)
	case PendingDeclaration:
		q.Declarations = append(q.Declarations, p)
	case PendingCondition:
		q.Conditions = append(q.Conditions, p)
	}
}
