package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// OpenSQLite builds a catalog from the schema of a SQLite database file.
// Only the schema is read; no row data is touched. Declared column types are
// mapped by affinity onto the lattice, and anything that maps to none of
// INTEGER/TEXT/BOOLEAN is an error rather than a silent UNKNOWN.
func OpenSQLite(path string) (*Schema, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("catalog: open sqlite db: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("catalog: open sqlite db %s: %w", path, err)
	}

	names, err := listTables(db)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("catalog: sqlite db %s has no tables", path)
	}

	tables := make([]*Table, 0, len(names))
	for _, name := range names {
		cols, err := readColumns(db, name)
		if err != nil {
			return nil, err
		}
		if err := attachForeignKeys(db, name, cols); err != nil {
			return nil, err
		}
		if err := attachUniques(db, name, cols); err != nil {
			return nil, err
		}
		tables = append(tables, NewTable(name, cols...))
	}

	return NewSchema(tables...), nil
}

func listTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("catalog: list tables: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func readColumns(db *sql.DB, table string) ([]*Column, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("catalog: table_info %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var cols []*Column
	for rows.Next() {
		var (
			cid     int
			name    string
			decl    string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &decl, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("catalog: table_info %s: %w", table, err)
		}

		dt, err := mapDeclaredType(decl)
		if err != nil {
			return nil, fmt.Errorf("catalog: column %s.%s: %w", table, name, err)
		}

		cols = append(cols, &Column{
			Name:       name,
			Type:       dt,
			NotNull:    notNull != 0,
			PrimaryKey: pk != 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: table_info %s: %w", table, err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("catalog: table %q has no columns", table)
	}
	return cols, nil
}

func attachForeignKeys(db *sql.DB, table string, cols []*Column) error {
	rows, err := db.Query(fmt.Sprintf("PRAGMA foreign_key_list(%q)", table))
	if err != nil {
		return fmt.Errorf("catalog: foreign_key_list %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			id, seq            int
			refTable           string
			from               string
			to                 sql.NullString
			onUpd, onDel, mtch string
		)
		if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpd, &onDel, &mtch); err != nil {
			return fmt.Errorf("catalog: foreign_key_list %s: %w", table, err)
		}
		if seq > 0 {
			return fmt.Errorf("catalog: table %q: composite foreign keys are not supported", table)
		}
		for _, c := range cols {
			if c.Name == from {
				c.ForeignKey = &ForeignKey{Table: refTable, Column: to.String}
				break
			}
		}
	}
	return rows.Err()
}

// attachUniques marks columns covered by a single-column unique index.
func attachUniques(db *sql.DB, table string, cols []*Column) error {
	type index struct {
		name   string
		unique bool
	}

	var idxs []index
	err := func() error {
		rows, err := db.Query(fmt.Sprintf("PRAGMA index_list(%q)", table))
		if err != nil {
			return fmt.Errorf("catalog: index_list %s: %w", table, err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var (
				seq     int
				name    string
				unique  int
				origin  string
				partial int
			)
			if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
				return fmt.Errorf("catalog: index_list %s: %w", table, err)
			}
			idxs = append(idxs, index{name: name, unique: unique != 0})
		}
		return rows.Err()
	}()
	if err != nil {
		return err
	}

	for _, ix := range idxs {
		if !ix.unique {
			continue
		}
		colNames, err := indexColumns(db, ix.name)
		if err != nil {
			return err
		}
		if len(colNames) != 1 {
			continue
		}
		for _, c := range cols {
			if c.Name == colNames[0] && !c.PrimaryKey {
				c.Unique = true
			}
		}
	}
	return nil
}

func indexColumns(db *sql.DB, index string) ([]string, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA index_info(%q)", index))
	if err != nil {
		return nil, fmt.Errorf("catalog: index_info %s: %w", index, err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var (
			seqno, cid int
			name       sql.NullString
		)
		if err := rows.Scan(&seqno, &cid, &name); err != nil {
			return nil, fmt.Errorf("catalog: index_info %s: %w", index, err)
		}
		if name.Valid {
			names = append(names, name.String)
		}
	}
	return names, rows.Err()
}

func mapDeclaredType(decl string) (DataType, error) {
	up := strings.ToUpper(strings.TrimSpace(decl))
	switch {
	case strings.Contains(up, "INT"):
		return TypeInteger, nil
	case strings.Contains(up, "CHAR"), strings.Contains(up, "CLOB"), strings.Contains(up, "TEXT"):
		return TypeText, nil
	case strings.Contains(up, "BOOL"):
		return TypeBoolean, nil
	default:
		return TypeUnknown, fmt.Errorf("unsupported sqlite column type %q", decl)
	}
}
