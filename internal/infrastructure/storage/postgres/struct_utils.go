package postgres

import (
	"reflect"
	"sync"
)

// ExtractDBColumns extracts all column names from struct "db" tags.
// Embedded structs (entity.Catalog, entity.BaseEntity) are walked recursively.
// Called once per repository at construction time.
//
// Usage:
//
//	columns := ExtractDBColumns[hotel.Hotel]()
//	// Returns: ["id", "deletion_mark", "version", "attributes", "code", "name", "address", ...]
func ExtractDBColumns[T any]() []string {
	var zero T
	return columnsOf(reflect.TypeOf(zero))
}

func columnsOf(t reflect.Type) []string {
	meta := metadataFor(t)
	cols := make([]string, 0, len(meta.fields))
	for _, f := range meta.fields {
		if f.embedded {
			cols = append(cols, columnsOf(f.typ)...)
			continue
		}
		cols = append(cols, f.column)
	}
	return cols
}

// fieldInfo describes a struct field that maps to a column or holds more columns.
type fieldInfo struct {
	index    int
	column   string
	embedded bool
	typ      reflect.Type
}

type typeMetadata struct {
	fields []fieldInfo
}

// typeCache holds metadata per struct type: map[reflect.Type]*typeMetadata.
var typeCache sync.Map

// metadataFor returns cached field metadata, computing it on first use.
// Field order is preserved so generated column lists are stable.
func metadataFor(t reflect.Type) *typeMetadata {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if cached, ok := typeCache.Load(t); ok {
		return cached.(*typeMetadata)
	}

	meta := &typeMetadata{}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.Anonymous {
				meta.fields = append(meta.fields, fieldInfo{index: i, embedded: true, typ: field.Type})
				continue
			}
			tag := field.Tag.Get("db")
			if tag == "" || tag == "-" {
				continue
			}
			meta.fields = append(meta.fields, fieldInfo{index: i, column: tag, typ: field.Type})
		}
	}

	actual, _ := typeCache.LoadOrStore(t, meta)
	return actual.(*typeMetadata)
}

// StructToMap converts a struct to a column→value map using "db" tags.
// Values of embedded structs are merged into the result.
func StructToMap(v any) map[string]any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	res := make(map[string]any)
	collect(rv, res)
	return res
}

func collect(rv reflect.Value, into map[string]any) {
	for _, f := range metadataFor(rv.Type()).fields {
		fv := rv.Field(f.index)
		if f.embedded {
			if fv.Kind() == reflect.Ptr {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct {
				collect(fv, into)
			}
			continue
		}
		into[f.column] = fv.Interface()
	}
}

// Pick returns the subset of data whose keys appear in cols.
func Pick(data map[string]any, cols []string, skip ...string) map[string]any {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	out := make(map[string]any, len(cols))
	for _, c := range cols {
		if skipped[c] {
			continue
		}
		if v, ok := data[c]; ok {
			out[c] = v
		}
	}
	return out
}
