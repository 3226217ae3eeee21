package manager

import (
	"github.com/dot5enko/simple-table-db/schema"
	"github.com/dot5enko/simple-table-db/store"
)

func DefaultColumns() []schema.Column {
	return []schema.Column{
		schema.NewColumn("name", "Name", schema.TextFieldType),
		schema.NewColumn("email", "Email", schema.TextFieldType),
		schema.NewColumn("age", "Age", schema.NumberFieldType),
		schema.NewColumn("role", "Role", schema.TextFieldType),
	}
}

func SampleRows() store.Rows {
	sample := []struct {
		id, name, email string
		age             float64
		role            string
	}{
		{"1", "John Doe", "john@example.com", 28, "Developer"},
		{"2", "Jane Smith", "jane@example.com", 32, "Designer"},
		{"3", "Bob Johnson", "bob@example.com", 45, "Manager"},
		{"4", "Alice Brown", "alice@example.com", 29, "Developer"},
		{"5", "Charlie Davis", "charlie@example.com", 35, "Analyst"},
		{"6", "Diana Wilson", "diana@example.com", 27, "Developer"},
		{"7", "Eve Martinez", "eve@example.com", 31, "Designer"},
		{"8", "Frank Garcia", "frank@example.com", 42, "Manager"},
		{"9", "Grace Lee", "grace@example.com", 26, "Developer"},
		{"10", "Henry Taylor", "henry@example.com", 38, "Analyst"},
	}

	rows := make(store.Rows, 0, len(sample))
	for _, it := range sample {
		rows = append(rows, store.NewRow(it.id, map[string]schema.Value{
			"name":  schema.Text(it.name),
			"email": schema.Text(it.email),
			"age":   schema.Number(it.age),
			"role":  schema.Text(it.role),
		}))
	}
	return rows
}

// DefaultConfig seeds the people table shown on first start.
func DefaultConfig() ManagerConfig {
	return ManagerConfig{
		TableName:          "people",
		Columns:            DefaultColumns(),
		Rows:               SampleRows(),
		RowsPerPageOptions: DefaultRowsPerPageOptions,
		DefaultRowsPerPage: 10,
	}
}
