package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lirlia/100day-challenge-backend-sub013/internal/catalog"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/analyzer"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/diag"
)

func main() {
	var (
		schemaPath = flag.String("schema", "", "JSON schema file describing the catalog")
		sqlitePath = flag.String("sqlite", "", "SQLite database file to introspect for the catalog")
		query      = flag.String("q", "", "SQL to analyze (reads stdin when empty)")
	)
	flag.Parse()

	os.Exit(run(*schemaPath, *sqlitePath, *query))
}

// run exits 0 when the SQL is clean, 1 when it has diagnostics, 2 on
// operational failure.
func run(schemaPath, sqlitePath, query string) int {
	schema, err := buildCatalog(schemaPath, sqlitePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	sql := query
	if sql == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: read stdin: %v\n", err)
			return 2
		}
		sql = string(data)
	}

	report := analyzer.New(schema).Analyze(sql)
	if report.Valid() {
		fmt.Println("OK")
		if report.AST != "" {
			fmt.Println(report.AST)
		}
		return 0
	}

	printDiagnostics("syntax", report.SyntaxErrors)
	printDiagnostics("semantic", report.SemanticErrors)
	return 1
}

func buildCatalog(schemaPath, sqlitePath string) (*catalog.Schema, error) {
	switch {
	case schemaPath != "" && sqlitePath != "":
		return nil, fmt.Errorf("use either -schema or -sqlite, not both")
	case schemaPath != "":
		return catalog.LoadFile(schemaPath)
	case sqlitePath != "":
		return catalog.OpenSQLite(sqlitePath)
	default:
		return catalog.Sample(), nil
	}
}

func printDiagnostics(channel string, diags []diag.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "%s errors (%d):\n", channel, len(diags))
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "  %s\n", d.String())
	}
}
