package script

// Env is a lexical scope.
type Env struct {
	parent *Env
	table  map[*Symbol]Value
}

// NewEnv returns an empty scope nested in parent, which may be nil.
func NewEnv(parent *Env) *Env { return &Env{parent: parent, table: make(map[*Symbol]Value)} }

// Define binds s in this scope, shadowing outer bindings.
func (e *Env) Define(s *Symbol, v Value) { e.table[s] = v }

// Set rebinds the innermost existing binding of s.
func (e *Env) Set(s *Symbol, v Value) bool {
	for ; e != nil; e = e.parent {
		if _, ok := e.table[s]; ok {
			e.table[s] = v
			return true
		}
	}
	return false
}

// Lookup finds s in this scope or an enclosing one.
func (e *Env) Lookup(s *Symbol) (Value, bool) {
	for ; e != nil; e = e.parent {
		if v, ok := e.table[s]; ok {
			return v, true
		}
	}
	return Nil, false
}
