// Package ast defines the statement and expression nodes the parser
// produces. Nodes are pure data; String() is a debug re-serialization for
// tooling, not a contract. The node unions are sealed: the unexported marker
// methods keep every variant inside this package, so a type switch over them
// can be exhaustive.
package ast

import (
	"strings"

	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/token"
)

type Node interface {
	String() string
}

type Statement interface {
	Node
	stmtNode()
}

// Expression is the sealed expression union. Every expression is registered
// in its Program's Arena at parse time and carries the resulting ID.
type Expression interface {
	Node
	exprNode()
	ID() ExprID
	setID(ExprID)
}

// expr is embedded by every expression variant; it carries the arena ID and
// the sealing marker.
type expr struct {
	id ExprID
}

func (e *expr) exprNode()      {}
func (e *expr) ID() ExprID     { return e.id }
func (e *expr) setID(i ExprID) { e.id = i }

// Program is the root node: the parsed statements plus the arena that owns
// every expression in them.
type Program struct {
	Statements []Statement
	Arena      *Arena
}

func (p *Program) String() string {
	parts := make([]string, 0, len(p.Statements))
	for _, s := range p.Statements {
		parts = append(parts, s.String()+";")
	}
	return strings.Join(parts, " ")
}

// ----- Statements -----

type SelectStatement struct {
	Token   token.Token // the SELECT token
	Columns []Expression
	From    *Identifier // nil when the FROM clause is missing
	Where   Expression
	OrderBy []*OrderByExpression
	Limit   *LimitClause
}

func (*SelectStatement) stmtNode() {}

func (s *SelectStatement) String() string {
	var b strings.Builder
	b.WriteString("SELECT ")

	cols := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		cols = append(cols, c.String())
	}
	b.WriteString(strings.Join(cols, ", "))

	if s.From != nil {
		b.WriteString(" FROM ")
		b.WriteString(s.From.String())
	}
	if s.Where != nil {
		b.WriteString(" WHERE ")
		b.WriteString(s.Where.String())
	}
	if len(s.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		items := make([]string, 0, len(s.OrderBy))
		for _, o := range s.OrderBy {
			items = append(items, o.String())
		}
		b.WriteString(strings.Join(items, ", "))
	}
	if s.Limit != nil {
		b.WriteString(" ")
		b.WriteString(s.Limit.String())
	}
	return b.String()
}

// ----- Expressions -----

type Identifier struct {
	expr
	Token token.Token
	Value string
}

func (i *Identifier) String() string { return i.Value }

type IntegerLiteral struct {
	expr
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) String() string { return il.Token.Literal }

type StringLiteral struct {
	expr
	Token token.Token
	Value string
}

func (sl *StringLiteral) String() string { return "'" + sl.Value + "'" }

type BooleanLiteral struct {
	expr
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) String() string { return bl.Token.Literal }

type NullLiteral struct {
	expr
	Token token.Token
}

func (*NullLiteral) String() string { return "NULL" }

type PrefixExpression struct {
	expr
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) String() string {
	right := ""
	if pe.Right != nil {
		right = pe.Right.String()
	}
	return "(" + pe.Operator + " " + right + ")"
}

type InfixExpression struct {
	expr
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) String() string {
	left, right := "", ""
	if ie.Left != nil {
		left = ie.Left.String()
	}
	if ie.Right != nil {
		right = ie.Right.String()
	}
	return "(" + left + " " + ie.Operator + " " + right + ")"
}

type FunctionCall struct {
	expr
	Token     token.Token // the function name token
	Name      *Identifier
	Arguments []Expression
}

func (fc *FunctionCall) String() string {
	args := make([]string, 0, len(fc.Arguments))
	for _, a := range fc.Arguments {
		args = append(args, a.String())
	}
	return fc.Name.String() + "(" + strings.Join(args, ", ") + ")"
}

type AliasExpression struct {
	expr
	Token      token.Token // the AS token
	Expression Expression
	Alias      *Identifier
}

func (ae *AliasExpression) String() string {
	inner := ""
	if ae.Expression != nil {
		inner = ae.Expression.String()
	}
	return "(" + inner + " AS " + ae.Alias.String() + ")"
}

type AllColumns struct {
	expr
	Token token.Token
}

func (*AllColumns) String() string { return "*" }

type OrderByExpression struct {
	expr
	Token     token.Token // the first token of the sort key
	Column    Expression
	Direction string // "ASC", "DESC", or "" (default ascending)
}

func (oe *OrderByExpression) String() string {
	s := ""
	if oe.Column != nil {
		s = oe.Column.String()
	}
	if oe.Direction != "" {
		s += " " + oe.Direction
	}
	return s
}

type LimitClause struct {
	expr
	Token token.Token // the LIMIT token
	Value Expression
}

func (lc *LimitClause) String() string {
	v := ""
	if lc.Value != nil {
		v = lc.Value.String()
	}
	return "LIMIT " + v
}

var (
	_ Statement = (*SelectStatement)(nil)

	_ Expression = (*Identifier)(nil)
	_ Expression = (*IntegerLiteral)(nil)
	_ Expression = (*StringLiteral)(nil)
	_ Expression = (*BooleanLiteral)(nil)
	_ Expression = (*NullLiteral)(nil)
	_ Expression = (*PrefixExpression)(nil)
	_ Expression = (*InfixExpression)(nil)
	_ Expression = (*FunctionCall)(nil)
	_ Expression = (*AliasExpression)(nil)
	_ Expression = (*AllColumns)(nil)
	_ Expression = (*OrderByExpression)(nil)
	_ Expression = (*LimitClause)(nil)
)
