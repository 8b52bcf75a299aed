package token

import "strings"

type Type string

// Token is the smallest lexical unit. Line and Column are 1-based and point
// at the token's first character.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	IDENT  Type = "IDENT"
	INT    Type = "INT"
	STRING Type = "STRING"

	ASTERISK  Type = "*"
	COMMA     Type = ","
	LPAREN    Type = "("
	RPAREN    Type = ")"
	SEMICOLON Type = ";"

	PLUS  Type = "+"
	MINUS Type = "-"
	SLASH Type = "/"

	EQ     Type = "="
	NOT_EQ Type = "!="
	LT     Type = "<"
	GT     Type = ">"
	LTE    Type = "<="
	GTE    Type = ">="

	SELECT  Type = "SELECT"
	FROM    Type = "FROM"
	WHERE   Type = "WHERE"
	AND     Type = "AND"
	OR      Type = "OR"
	NOT     Type = "NOT"
	AS      Type = "AS"
	IS      Type = "IS"
	LIKE    Type = "LIKE"
	BETWEEN Type = "BETWEEN"
	IN      Type = "IN"
	ORDER   Type = "ORDER"
	BY      Type = "BY"
	ASC     Type = "ASC"
	DESC    Type = "DESC"
	LIMIT   Type = "LIMIT"

	TRUE  Type = "TRUE"
	FALSE Type = "FALSE"
	NULL  Type = "NULL"
)

var keywords = map[string]Type{
	"SELECT":  SELECT,
	"FROM":    FROM,
	"WHERE":   WHERE,
	"AND":     AND,
	"OR":      OR,
	"NOT":     NOT,
	"AS":      AS,
	"IS":      IS,
	"LIKE":    LIKE,
	"BETWEEN": BETWEEN,
	"IN":      IN,
	"ORDER":   ORDER,
	"BY":      BY,
	"ASC":     ASC,
	"DESC":    DESC,
	"LIMIT":   LIMIT,
	"TRUE":    TRUE,
	"FALSE":   FALSE,
	"NULL":    NULL,
}

// LookupIdent classifies an identifier-shaped word. Keywords match
// case-insensitively; the token keeps the literal as written.
func LookupIdent(ident string) Type {
	if t, ok := keywords[strings.ToUpper(ident)]; ok {
		return t
	}
	return IDENT
}
