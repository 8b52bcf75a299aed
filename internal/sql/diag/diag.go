// Package diag holds the diagnostic record shared by the parser and the
// validator. It lives in its own package so both can emit it without
// importing each other.
package diag

import "fmt"

// Diagnostic is one syntax or semantic finding. Line and Column are 1-based;
// both are 0 when no source token was available.
type Diagnostic struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

func Newf(line, column int, format string, args ...any) Diagnostic {
	return Diagnostic{
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}

func (d Diagnostic) String() string {
	if d.Line == 0 && d.Column == 0 {
		return d.Message
	}
	return fmt.Sprintf("line %d, column %d: %s", d.Line, d.Column, d.Message)
}
