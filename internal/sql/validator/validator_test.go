package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lirlia/100day-challenge-backend-sub013/internal/catalog"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/ast"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/diag"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/lexer"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/parser"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(input))
	program := p.ParseProgram()
	require.Empty(t, p.Diagnostics(), "syntax errors for %q", input)
	return program
}

func runValidate(t *testing.T, input string) (*Validator, *ast.SelectStatement, []diag.Diagnostic) {
	t.Helper()
	program := parseProgram(t, input)
	require.NotEmpty(t, program.Statements)
	stmt, ok := program.Statements[0].(*ast.SelectStatement)
	require.True(t, ok, "want *ast.SelectStatement, got %T", program.Statements[0])

	v := New(catalog.Sample())
	return v, stmt, v.Validate(program)
}

func TestValidate_CleanQueries(t *testing.T) {
	cases := []string{
		"SELECT id, name FROM users;",
		"SELECT * FROM users;",
		"SELECT COUNT(*) FROM orders;",
		"SELECT id AS uid, name FROM users ORDER BY uid DESC;",
		"SELECT id, name FROM users WHERE id = 1 AND is_active = TRUE ORDER BY name ASC LIMIT 10;",
		"SELECT id FROM users WHERE name IS NULL;",
		"SELECT id FROM users WHERE name IS NOT NULL;",
		"SELECT id FROM users WHERE name LIKE 'a%';",
		"SELECT -id FROM users;",
		"SELECT NOT is_active FROM users;",
		"SELECT id + price FROM products WHERE price / 2 > 10;",
		"SELECT quantity * total_amount FROM orders LIMIT -1;",
	}

	for _, input := range cases {
		_, _, diags := runValidate(t, input)
		assert.Empty(t, diags, "input: %s", input)
	}
}

func TestValidate_TableNotFound(t *testing.T) {
	_, _, diags := runValidate(t, "SELECT name FROM non_existent_table;")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Table 'non_existent_table' not found in schema")
}

func TestValidate_ColumnNotFound(t *testing.T) {
	_, _, diags := runValidate(t, "SELECT missing FROM users;")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Column or alias 'missing' not found in table 'users' or SELECT list")
}

func TestValidate_IndependentErrors(t *testing.T) {
	_, _, diags := runValidate(t, "SELECT invalid_1 FROM users WHERE invalid_2 = 'abc'")

	// One diagnostic per unresolved identifier, select list before WHERE.
	require.Len(t, diags, 2)
	assert.Contains(t, diags[0].Message, "invalid_1")
	assert.Contains(t, diags[1].Message, "invalid_2")
}

func TestValidate_TypeSoundness(t *testing.T) {
	cases := []struct {
		input    string
		wantType catalog.DataType
		wantErrs int
	}{
		{"SELECT id FROM users", catalog.TypeInteger, 0},
		{"SELECT is_active FROM users", catalog.TypeBoolean, 0},
		{"SELECT name FROM users", catalog.TypeText, 0},
		{"SELECT id + 1 FROM users", catalog.TypeInteger, 0},
		{"SELECT id = 'abc' FROM users", catalog.TypeBoolean, 1},
	}

	for _, tc := range cases {
		v, stmt, diags := runValidate(t, tc.input)
		require.Len(t, diags, tc.wantErrs, "input: %s", tc.input)
		require.NotEmpty(t, stmt.Columns)
		assert.Equal(t, tc.wantType, v.TypeOf(stmt.Columns[0]), "input: %s", tc.input)
	}
}

func TestValidate_ComparisonMismatch(t *testing.T) {
	v, stmt, diags := runValidate(t, "SELECT id FROM users WHERE is_active > 5")

	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "requires INTEGER or TEXT operands of the same type, got BOOLEAN and INTEGER")
	assert.Equal(t, catalog.TypeBoolean, v.TypeOf(stmt.Where))
}

func TestValidate_EqualityMismatch(t *testing.T) {
	_, _, diags := runValidate(t, "SELECT id = 'abc' FROM users;")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Cannot compare values of type INTEGER and TEXT using '='")
}

func TestValidate_ArithmeticMismatch(t *testing.T) {
	v, stmt, diags := runValidate(t, "SELECT name + 1 FROM users;")

	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Arithmetic operator '+' requires INTEGER operands, got TEXT and INTEGER")
	assert.Equal(t, catalog.TypeInteger, v.TypeOf(stmt.Columns[0]))
}

func TestValidate_LogicalMismatch(t *testing.T) {
	_, _, diags := runValidate(t, "SELECT id FROM users WHERE id AND is_active;")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Logical operator 'AND' requires BOOLEAN operands, got INTEGER and BOOLEAN")
}

func TestValidate_LikeRequiresText(t *testing.T) {
	_, _, diags := runValidate(t, "SELECT id FROM users WHERE id LIKE 'a%';")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Operator LIKE requires TEXT operands, got INTEGER and TEXT")
}

func TestValidate_PrefixOperators(t *testing.T) {
	v, stmt, diags := runValidate(t, "SELECT -name FROM users;")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Unary operator '-' requires an INTEGER expression, got TEXT")
	assert.Equal(t, catalog.TypeInteger, v.TypeOf(stmt.Columns[0]))

	v, stmt, diags = runValidate(t, "SELECT NOT id FROM users;")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Operator NOT requires a BOOLEAN expression, got INTEGER")
	assert.Equal(t, catalog.TypeBoolean, v.TypeOf(stmt.Columns[0]))
}

func TestValidate_StarWithoutFrom(t *testing.T) {
	// The missing FROM is a syntax-channel finding; here only the semantic
	// side matters, so the parser diagnostics are ignored.
	p := parser.New(lexer.New("SELECT *"))
	program := p.ParseProgram()
	require.NotEmpty(t, p.Diagnostics())

	v := New(catalog.Sample())
	diags := v.Validate(program)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Cannot use '*' without a FROM clause")
}

func TestValidate_StarWithUnknownTable(t *testing.T) {
	// The table failure is the root cause; '*' must not pile on.
	_, _, diags := runValidate(t, "SELECT * FROM nope;")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Table 'nope' not found in schema")
}

func TestValidate_UnknownAbsorbsFollowOnChecks(t *testing.T) {
	v, stmt, diags := runValidate(t, "SELECT missing + 1 FROM users;")

	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Column or alias 'missing'")
	assert.Equal(t, catalog.TypeInteger, v.TypeOf(stmt.Columns[0]))
}

func TestValidate_FunctionCalls(t *testing.T) {
	v, stmt, diags := runValidate(t, "SELECT COUNT(*) FROM orders;")
	require.Empty(t, diags)
	assert.Equal(t, catalog.TypeInteger, v.TypeOf(stmt.Columns[0]))

	_, _, diags = runValidate(t, "SELECT count(id) FROM users;")
	assert.Empty(t, diags, "COUNT matching is case-insensitive")

	_, _, diags = runValidate(t, "SELECT COUNT(id, name) FROM users;")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Invalid number of arguments for function COUNT (expected 1)")

	v, stmt, diags = runValidate(t, "SELECT MAX(id) FROM users;")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Unknown function: MAX")
	assert.Equal(t, catalog.TypeUnknown, v.TypeOf(stmt.Columns[0]))
}

func TestValidate_AliasResolution(t *testing.T) {
	_, _, diags := runValidate(t, "SELECT id AS uid, name FROM users ORDER BY uid DESC")
	assert.Empty(t, diags)

	// Aliases also resolve without a table context.
	p := parser.New(lexer.New("SELECT 1 AS one ORDER BY one"))
	program := p.ParseProgram()
	v := New(catalog.Sample())
	assert.Empty(t, v.Validate(program))
}

func TestValidate_UnresolvableIdentifiers(t *testing.T) {
	_, _, diags := runValidate(t, "SELECT id FROM users ORDER BY nope;")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Column or alias 'nope' not found in table 'users' or SELECT list")

	p := parser.New(lexer.New("SELECT nope"))
	program := p.ParseProgram()
	v := New(catalog.Sample())
	diags = v.Validate(program)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Cannot resolve identifier 'nope' without a valid FROM clause or alias definition")
}

func TestValidate_OrderByBoolean(t *testing.T) {
	_, _, diags := runValidate(t, "SELECT id FROM users ORDER BY is_active;")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Ordering by BOOLEAN expression ('is_active') is not allowed or recommended")

	// An UNKNOWN key reports its own root cause and nothing more.
	_, _, diags = runValidate(t, "SELECT id FROM users ORDER BY missing;")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Column or alias 'missing'")
}

func TestValidate_Limit(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"SELECT id FROM users LIMIT 'abc';", "LIMIT clause requires a non-negative integer value, got TEXT ('abc')"},
		{"SELECT id FROM users LIMIT TRUE;", "LIMIT clause requires a non-negative integer value, got BOOLEAN (TRUE)"},
	}
	for _, tc := range cases {
		_, _, diags := runValidate(t, tc.input)
		require.Len(t, diags, 1, "input: %s", tc.input)
		assert.Contains(t, diags[0].Message, tc.want, "input: %s", tc.input)
	}

	for _, input := range []string{
		"SELECT id FROM users LIMIT 10;",
		"SELECT id FROM users LIMIT id;",
		"SELECT id FROM users LIMIT -1;",
	} {
		_, _, diags := runValidate(t, input)
		assert.Empty(t, diags, "input: %s", input)
	}
}

func TestValidate_IsOperator(t *testing.T) {
	_, _, diags := runValidate(t, "SELECT id FROM users WHERE name IS 'x';")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Operator IS currently only supports IS NULL/IS NOT NULL syntax")
}

func TestValidate_UnsupportedOperators(t *testing.T) {
	_, _, diags := runValidate(t, "SELECT id FROM users WHERE id BETWEEN 1 AND 10;")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Unsupported operator: BETWEEN")

	_, _, diags = runValidate(t, "SELECT id FROM users WHERE id IN (1);")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Unsupported operator: IN")
}

func TestValidate_DiagnosticPositions(t *testing.T) {
	_, _, diags := runValidate(t, "SELECT bad_col FROM users;")
	require.Len(t, diags, 1)
	assert.Equal(t, 1, diags[0].Line)
	assert.Equal(t, 8, diags[0].Column)
}

func TestValidate_Idempotence(t *testing.T) {
	program := parseProgram(t, "SELECT invalid_1 FROM users WHERE invalid_2 = 'abc'")
	v := New(catalog.Sample())

	first := v.Validate(program)
	second := v.Validate(program)
	require.Len(t, first, 2)
	assert.Equal(t, first, second)
}

func TestValidate_StateResetsBetweenCalls(t *testing.T) {
	v := New(catalog.Sample())

	bad := parseProgram(t, "SELECT missing FROM users;")
	clean := parseProgram(t, "SELECT id FROM users;")

	require.Len(t, v.Validate(bad), 1)
	assert.Empty(t, v.Validate(clean))
	assert.Len(t, v.Validate(bad), 1)
}

func TestValidate_TableContextPerStatement(t *testing.T) {
	_, _, diags := runValidate(t, "SELECT name FROM no_such; SELECT name FROM users;")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Table 'no_such' not found in schema")

	_, _, diags = runValidate(t, "SELECT price FROM products; SELECT is_active FROM users;")
	assert.Empty(t, diags)
}
