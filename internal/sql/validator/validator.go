// Package validator checks a parsed Program against a schema catalog. It
// resolves identifiers to columns or SELECT-list aliases, assigns every
// expression a type, and collects semantic diagnostics without stopping at
// the first problem.
package validator

import (
	"strings"

	"github.com/lirlia/100day-challenge-backend-sub013/internal/catalog"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/ast"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/diag"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/token"
)

// Validator carries per-call state: a diagnostics list and a type cache
// indexed by arena expression ID. The schema itself is never mutated, so one
// schema can back any number of validators.
type Validator struct {
	schema *catalog.Schema

	diagnostics  []diag.Diagnostic
	types        []catalog.DataType
	currentStmt  *ast.SelectStatement
	currentTable *catalog.Table
}

func New(schema *catalog.Schema) *Validator {
	return &Validator{schema: schema}
}

// Validate walks the program and returns all semantic diagnostics. State is
// reset on entry, so repeated calls with different programs are independent.
func (v *Validator) Validate(program *ast.Program) []diag.Diagnostic {
	v.diagnostics = nil
	v.currentStmt = nil
	v.currentTable = nil

	if program == nil {
		return nil
	}

	n := 0
	if program.Arena != nil {
		n = program.Arena.Len()
	}
	// Zero value is TypeUnknown, so unvisited slots read as UNKNOWN.
	v.types = make([]catalog.DataType, n)

	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *ast.SelectStatement:
			v.validateSelect(s)
		default:
			v.diagnostics = append(v.diagnostics, diag.Newf(0, 0, "unsupported statement type %T", stmt))
		}
	}
	return v.diagnostics
}

// TypeOf reports the type assigned to e during the most recent Validate
// call. Expressions that were never visited report UNKNOWN.
func (v *Validator) TypeOf(e ast.Expression) catalog.DataType {
	if e == nil {
		return catalog.TypeUnknown
	}
	id := int(e.ID())
	if id < 0 || id >= len(v.types) {
		return catalog.TypeUnknown
	}
	return v.types[id]
}

func (v *Validator) setType(e ast.Expression, t catalog.DataType) {
	id := int(e.ID())
	if id >= 0 && id < len(v.types) {
		v.types[id] = t
	}
}

// validateSelect fixes the traversal order: FROM establishes table context,
// then select list, WHERE, ORDER BY, LIMIT. Operands are always typed before
// the expressions that contain them.
func (v *Validator) validateSelect(stmt *ast.SelectStatement) {
	v.currentStmt = stmt
	v.currentTable = nil

	if stmt.From != nil {
		table, err := v.schema.FindTable(stmt.From.Value)
		if err != nil {
			v.errorf(stmt.From.Token, "Table '%s' not found in schema", stmt.From.Value)
		} else {
			v.currentTable = table
		}
	}

	for _, col := range stmt.Columns {
		v.checkExpression(col)
	}
	if stmt.Where != nil {
		v.checkExpression(stmt.Where)
	}
	for _, item := range stmt.OrderBy {
		v.checkOrderBy(item)
	}
	if stmt.Limit != nil {
		v.checkLimit(stmt.Limit)
	}
}

func (v *Validator) checkExpression(e ast.Expression) catalog.DataType {
	if e == nil {
		return catalog.TypeUnknown
	}

	var t catalog.DataType
	switch node := e.(type) {
	case *ast.IntegerLiteral:
		t = catalog.TypeInteger
	case *ast.StringLiteral:
		t = catalog.TypeText
	case *ast.BooleanLiteral:
		t = catalog.TypeBoolean
	case *ast.NullLiteral:
		t = catalog.TypeUnknown
	case *ast.Identifier:
		t = v.resolveIdentifier(node)
	case *ast.AllColumns:
		if v.currentStmt == nil || v.currentStmt.From == nil {
			v.errorf(node.Token, "Cannot use '*' without a FROM clause")
		}
		t = catalog.TypeUnknown
	case *ast.PrefixExpression:
		t = v.checkPrefix(node)
	case *ast.InfixExpression:
		t = v.checkInfix(node)
	case *ast.FunctionCall:
		t = v.checkFunctionCall(node)
	case *ast.AliasExpression:
		t = v.checkExpression(node.Expression)
	default:
		v.diagnostics = append(v.diagnostics, diag.Newf(0, 0, "unsupported expression type %T", e))
		t = catalog.TypeUnknown
	}
	v.setType(e, t)
	return t
}

// resolveIdentifier implements the three-step lookup: column of the current
// table, then SELECT-list alias, then failure. Without a table context only
// aliases can resolve.
func (v *Validator) resolveIdentifier(node *ast.Identifier) catalog.DataType {
	if v.currentTable != nil {
		if col, err := v.currentTable.FindColumn(node.Value); err == nil {
			return col.Type
		}
		if t, ok := v.aliasType(node.Value); ok {
			return t
		}
		v.errorf(node.Token, "Column or alias '%s' not found in table '%s' or SELECT list", node.Value, v.currentTable.Name)
		return catalog.TypeUnknown
	}

	if t, ok := v.aliasType(node.Value); ok {
		return t
	}
	if v.currentStmt != nil && v.currentStmt.From != nil {
		// FROM names a table the catalog rejected; that failure is already
		// reported, so references under it simply stay UNKNOWN.
		return catalog.TypeUnknown
	}
	v.errorf(node.Token, "Cannot resolve identifier '%s' without a valid FROM clause or alias definition", node.Value)
	return catalog.TypeUnknown
}

// aliasType scans the current SELECT list for an AS binding with the given
// name and reports the type cached for it. An alias referenced before its
// own column was visited reads as UNKNOWN.
func (v *Validator) aliasType(name string) (catalog.DataType, bool) {
	if v.currentStmt == nil {
		return catalog.TypeUnknown, false
	}
	for _, col := range v.currentStmt.Columns {
		alias, ok := col.(*ast.AliasExpression)
		if !ok || alias.Alias == nil {
			continue
		}
		if alias.Alias.Value == name {
			return v.TypeOf(alias), true
		}
	}
	return catalog.TypeUnknown, false
}

func (v *Validator) checkPrefix(node *ast.PrefixExpression) catalog.DataType {
	operand := v.checkExpression(node.Right)

	switch node.Operator {
	case "NOT":
		if operand != catalog.TypeBoolean && operand != catalog.TypeUnknown {
			v.errorf(node.Token, "Operator NOT requires a BOOLEAN expression, got %s", operand)
		}
		return catalog.TypeBoolean
	case "-":
		if operand != catalog.TypeInteger && operand != catalog.TypeUnknown {
			v.errorf(node.Token, "Unary operator '-' requires an INTEGER expression, got %s", operand)
		}
		return catalog.TypeInteger
	default:
		v.errorf(node.Token, "Unsupported operator: %s", node.Operator)
		return catalog.TypeUnknown
	}
}

// checkInfix types both operands first. An UNKNOWN operand suppresses the
// operator's own mismatch check (its root cause was already reported) while
// the expression still gets a result type.
func (v *Validator) checkInfix(node *ast.InfixExpression) catalog.DataType {
	left := v.checkExpression(node.Left)
	right := v.checkExpression(node.Right)

	unknown := left == catalog.TypeUnknown || right == catalog.TypeUnknown

	switch node.Operator {
	case "+", "-", "*", "/":
		if !unknown && (left != catalog.TypeInteger || right != catalog.TypeInteger) {
			v.errorf(node.Token, "Arithmetic operator '%s' requires INTEGER operands, got %s and %s", node.Operator, left, right)
		}
		return catalog.TypeInteger
	case "=", "!=", "<>":
		if !unknown && left != right {
			v.errorf(node.Token, "Cannot compare values of type %s and %s using '%s'", left, right, node.Operator)
		}
		return catalog.TypeBoolean
	case "<", ">", "<=", ">=":
		if !unknown && (left != right || (left != catalog.TypeInteger && left != catalog.TypeText)) {
			v.errorf(node.Token, "Comparison operator '%s' requires INTEGER or TEXT operands of the same type, got %s and %s", node.Operator, left, right)
		}
		return catalog.TypeBoolean
	case "AND", "OR":
		if !unknown && (left != catalog.TypeBoolean || right != catalog.TypeBoolean) {
			v.errorf(node.Token, "Logical operator '%s' requires BOOLEAN operands, got %s and %s", node.Operator, left, right)
		}
		return catalog.TypeBoolean
	case "LIKE":
		if !unknown && (left != catalog.TypeText || right != catalog.TypeText) {
			v.errorf(node.Token, "Operator LIKE requires TEXT operands, got %s and %s", left, right)
		}
		return catalog.TypeBoolean
	case "IS":
		if !isNullTest(node.Right) {
			v.errorf(node.Token, "Operator IS currently only supports IS NULL/IS NOT NULL syntax")
		}
		return catalog.TypeBoolean
	default:
		v.errorf(node.Token, "Unsupported operator: %s", node.Operator)
		return catalog.TypeUnknown
	}
}

func (v *Validator) checkFunctionCall(node *ast.FunctionCall) catalog.DataType {
	for _, arg := range node.Arguments {
		v.checkExpression(arg)
	}

	if node.Name == nil {
		return catalog.TypeUnknown
	}
	if strings.EqualFold(node.Name.Value, "COUNT") {
		if len(node.Arguments) != 1 {
			v.errorf(node.Token, "Invalid number of arguments for function COUNT (expected 1)")
		}
		return catalog.TypeInteger
	}
	v.errorf(node.Token, "Unknown function: %s", node.Name.Value)
	return catalog.TypeUnknown
}

func (v *Validator) checkOrderBy(node *ast.OrderByExpression) {
	if node == nil || node.Column == nil {
		return
	}
	t := v.checkExpression(node.Column)
	v.setType(node, t)

	if t == catalog.TypeBoolean {
		v.errorf(node.Token, "Ordering by BOOLEAN expression ('%s') is not allowed or recommended", node.Column.String())
	}
}

// checkLimit accepts an integer literal outright; anything else must at
// least compute to INTEGER. Negative values and OFFSET are not checked.
func (v *Validator) checkLimit(node *ast.LimitClause) {
	if node == nil || node.Value == nil {
		return
	}
	t := v.checkExpression(node.Value)
	v.setType(node, t)

	if _, ok := node.Value.(*ast.IntegerLiteral); ok {
		return
	}
	if t == catalog.TypeInteger || t == catalog.TypeUnknown {
		return
	}
	v.errorf(node.Token, "LIMIT clause requires a non-negative integer value, got %s (%s)", t, node.Value.String())
}

// isNullTest reports whether e is the NULL literal or NOT applied to it,
// the only right-hand shapes IS accepts.
func isNullTest(e ast.Expression) bool {
	switch node := e.(type) {
	case *ast.NullLiteral:
		return true
	case *ast.PrefixExpression:
		if node.Operator != "NOT" {
			return false
		}
		_, ok := node.Right.(*ast.NullLiteral)
		return ok
	default:
		return false
	}
}

func (v *Validator) errorf(tok token.Token, format string, args ...any) {
	v.diagnostics = append(v.diagnostics, diag.Newf(tok.Line, tok.Column, format, args...))
}
