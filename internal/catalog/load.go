package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

type fileTable struct {
	Name    string    `json:"name"`
	Columns []*Column `json:"columns"`
}

type fileSchema struct {
	Tables []fileTable `json:"tables"`
}

// LoadFile reads a schema catalog from a JSON file.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read schema file: %w", err)
	}

	var fs fileSchema
	if err := json.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("catalog: parse schema file: %w", err)
	}
	if len(fs.Tables) == 0 {
		return nil, fmt.Errorf("catalog: schema file %s defines no tables", path)
	}

	tables := make([]*Table, 0, len(fs.Tables))
	for _, ft := range fs.Tables {
		if ft.Name == "" {
			return nil, fmt.Errorf("catalog: schema file %s contains a table without a name", path)
		}
		if len(ft.Columns) == 0 {
			return nil, fmt.Errorf("catalog: table %q defines no columns", ft.Name)
		}
		for _, c := range ft.Columns {
			if c.Name == "" {
				return nil, fmt.Errorf("catalog: table %q contains a column without a name", ft.Name)
			}
			if c.Type == TypeUnknown {
				return nil, fmt.Errorf("catalog: column %s.%s has no type", ft.Name, c.Name)
			}
		}
		tables = append(tables, NewTable(ft.Name, ft.Columns...))
	}

	return NewSchema(tables...), nil
}
