// Package catalog is the read-only schema description SQL gets validated
// against: tables, columns, column types, and constraints. A Schema is built
// once and never mutated, so it is safe to share across concurrent
// validations.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTableNotFound  = errors.New("catalog: table not found")
	ErrColumnNotFound = errors.New("catalog: column not found")
)

// DataType is the validator's type lattice. TypeUnknown is the zero value;
// it marks expressions whose type could not be resolved and suppresses
// cascading mismatch reports.
type DataType int

const (
	TypeUnknown DataType = iota
	TypeInteger
	TypeText
	TypeBoolean
)

func (t DataType) String() string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeText:
		return "TEXT"
	case TypeBoolean:
		return "BOOLEAN"
	default:
		return "UNKNOWN"
	}
}

// ParseDataType maps a type name to its DataType, case-insensitively.
func ParseDataType(s string) (DataType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INTEGER":
		return TypeInteger, nil
	case "TEXT":
		return TypeText, nil
	case "BOOLEAN":
		return TypeBoolean, nil
	default:
		return TypeUnknown, fmt.Errorf("catalog: unsupported data type %q", s)
	}
}

func (t DataType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DataType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	dt, err := ParseDataType(s)
	if err != nil {
		return err
	}
	*t = dt
	return nil
}

// ForeignKey names the referenced table and column.
type ForeignKey struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

type Column struct {
	Name       string      `json:"name"`
	Type       DataType    `json:"type"`
	NotNull    bool        `json:"not_null,omitempty"`
	Unique     bool        `json:"unique,omitempty"`
	PrimaryKey bool        `json:"primary_key,omitempty"`
	ForeignKey *ForeignKey `json:"foreign_key,omitempty"`
}

// Table holds ordered columns plus a name index built once at construction.
type Table struct {
	Name    string
	Columns []*Column

	columnIndex map[string]int
}

func NewTable(name string, columns ...*Column) *Table {
	t := &Table{
		Name:        name,
		Columns:     columns,
		columnIndex: make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		t.columnIndex[c.Name] = i
	}
	return t
}

// FindColumn looks up a column by exact name.
func (t *Table) FindColumn(name string) (*Column, error) {
	i, ok := t.columnIndex[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in table %q", ErrColumnNotFound, name, t.Name)
	}
	return t.Columns[i], nil
}

// Schema holds ordered tables plus a name index built once at construction.
type Schema struct {
	Tables []*Table

	tableIndex map[string]int
}

func NewSchema(tables ...*Table) *Schema {
	s := &Schema{
		Tables:     tables,
		tableIndex: make(map[string]int, len(tables)),
	}
	for i, t := range tables {
		s.tableIndex[t.Name] = i
	}
	return s
}

// FindTable looks up a table by exact name.
func (s *Schema) FindTable(name string) (*Table, error) {
	i, ok := s.tableIndex[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}
	return s.Tables[i], nil
}
