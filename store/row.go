package store

import (
	"maps"

	"github.com/dot5enko/simple-table-db/schema"
)

// IdField is the field key under which a row exposes its identifier.
const IdField = "id"

type Row struct {
	Id     string
	Fields map[string]schema.Value
}

func NewRow(id string, fields map[string]schema.Value) Row {
	if fields == nil {
		fields = map[string]schema.Value{}
	}
	return Row{Id: id, Fields: fields}
}

// Field returns the value stored for a column id. The id field is always present.
func (r Row) Field(columnId string) (schema.Value, bool) {
	if columnId == IdField {
		return schema.Text(r.Id), true
	}
	v, ok := r.Fields[columnId]
	return v, ok
}

func (r Row) Set(columnId string, v schema.Value) {
	r.Fields[columnId] = v
}

// EachValue visits the id and every stored field, declared or not.
func (r Row) EachValue(cb func(key string, v schema.Value) bool) {
	if !cb(IdField, schema.Text(r.Id)) {
		return
	}
	for key, v := range r.Fields {
		if key == IdField {
			continue
		}
		if !cb(key, v) {
			return
		}
	}
}

func (r Row) Clone() Row {
	fields := maps.Clone(r.Fields)
	if fields == nil {
		fields = map[string]schema.Value{}
	}
	return Row{Id: r.Id, Fields: fields}
}

func (r Row) Equal(other Row) bool {
	if r.Id != other.Id || len(r.Fields) != len(other.Fields) {
		return false
	}
	for key, v := range r.Fields {
		ov, ok := other.Fields[key]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

type Rows []Row

func (r Rows) Clone() Rows {
	out := make(Rows, len(r))
	for i, row := range r {
		out[i] = row.Clone()
	}
	return out
}
