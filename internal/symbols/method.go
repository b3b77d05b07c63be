package symbols

// Method is a declared void method.
type Method struct {
	Name  string
	Scope ScopeID
	Args  []*Variable
	Line  uint32
}

// Arity is the number of formal arguments.
func (m *Method) Arity() int { return len(m.Args) }
