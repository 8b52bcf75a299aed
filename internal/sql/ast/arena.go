package ast

// ExprID addresses an expression inside its Program's arena. IDs are dense
// and assigned in registration order, so a []T indexed by ExprID can stand in
// for a per-expression map.
type ExprID int

// Arena owns every expression of one Program. It exists so downstream passes
// can key per-expression state (like inferred types) by small integer instead
// of by node identity.
type Arena struct {
	exprs []Expression
}

func NewArena() *Arena {
	return &Arena{}
}

// Register assigns the next ID to e and records it. Registering nil is a
// no-op returning -1 so the parser can register unconditionally.
func (a *Arena) Register(e Expression) ExprID {
	if e == nil {
		return -1
	}
	id := ExprID(len(a.exprs))
	a.exprs = append(a.exprs, e)
	e.setID(id)
	return id
}

func (a *Arena) Get(id ExprID) Expression {
	if id < 0 || int(id) >= len(a.exprs) {
		return nil
	}
	return a.exprs[id]
}

func (a *Arena) Len() int { return len(a.exprs) }
