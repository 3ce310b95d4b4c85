package crud

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"
)

// MemoryRepository is an in-memory Repository implementation for scaffolding
// and tests. Filters and ordering resolve bun column tags via reflection so
// the same ListQuery values work against both backends.
type MemoryRepository[T any] struct {
	mu       sync.RWMutex
	resource string
	handlers ModelHandlers[T]
	records  map[int64]T
	nextID   int64
	now      func() time.Time
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository[T any](resource string, handlers ModelHandlers[T]) *MemoryRepository[T] {
	return &MemoryRepository[T]{
		resource: resource,
		handlers: handlers,
		records:  make(map[int64]T),
		nextID:   1,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryRepository[T]) List(_ context.Context, q ListQuery) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.records))
	for _, rec := range m.records {
		if matchesFilters(rec, q.Filters) {
			out = append(out, m.clone(rec))
		}
	}
	if q.Order.Column != "" {
		sortByColumn(out, q.Order)
	} else {
		sort.Slice(out, func(i, j int) bool {
			return m.handlers.GetID(out[i]) < m.handlers.GetID(out[j])
		})
	}
	if q.Offset > 0 {
		if q.Offset >= len(out) {
			return []T{}, nil
		}
		out = out[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *MemoryRepository[T]) GetByID(_ context.Context, id int64) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		var zero T
		return zero, &NotFoundError{Resource: m.resource, Key: fmt.Sprintf("%d", id)}
	}
	return m.clone(rec), nil
}

func (m *MemoryRepository[T]) GetByIdentifier(_ context.Context, value string) (T, error) {
	var zero T
	if m.handlers.GetIdentifier == nil || m.handlers.GetIdentifier() == "" {
		return zero, ErrIdentifierUnsupported
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.records {
		if m.handlers.GetIdentifierValue(rec) == value {
			return m.clone(rec), nil
		}
	}
	return zero, &NotFoundError{Resource: m.resource, Key: value}
}

func (m *MemoryRepository[T]) Create(_ context.Context, record T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	if value := m.identifierValue(record); value != "" {
		for _, rec := range m.records {
			if m.handlers.GetIdentifierValue(rec) == value {
				return zero, &ConflictError{Resource: m.resource, Field: m.handlers.GetIdentifier(), Value: value}
			}
		}
	}

	if m.handlers.GetID(record) == 0 {
		m.handlers.SetID(record, m.nextID)
		m.nextID++
	} else if id := m.handlers.GetID(record); id >= m.nextID {
		m.nextID = id + 1
	}
	if m.handlers.Stamp != nil {
		m.handlers.Stamp(record, m.now(), true)
	}

	m.records[m.handlers.GetID(record)] = m.clone(record)
	return m.clone(record), nil
}

func (m *MemoryRepository[T]) Update(_ context.Context, record T, opts UpdateOptions) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	id := m.handlers.GetID(record)
	if _, ok := m.records[id]; !ok {
		return zero, &NotFoundError{Resource: m.resource, Key: fmt.Sprintf("%d", id)}
	}

	if opts.CheckIdentifier {
		if value := m.identifierValue(record); value != "" {
			for otherID, rec := range m.records {
				if otherID != id && m.handlers.GetIdentifierValue(rec) == value {
					return zero, &ConflictError{Resource: m.resource, Field: m.handlers.GetIdentifier(), Value: value}
				}
			}
		}
	}

	if m.handlers.Stamp != nil {
		m.handlers.Stamp(record, m.now(), false)
	}
	m.records[id] = m.clone(record)
	return m.clone(record), nil
}

func (m *MemoryRepository[T]) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return &NotFoundError{Resource: m.resource, Key: fmt.Sprintf("%d", id)}
	}
	delete(m.records, id)
	return nil
}

func (m *MemoryRepository[T]) clone(record T) T {
	if m.handlers.Clone != nil {
		return m.handlers.Clone(record)
	}
	return record
}

func (m *MemoryRepository[T]) identifierValue(record T) string {
	if m.handlers.GetIdentifierValue == nil {
		return ""
	}
	return m.handlers.GetIdentifierValue(record)
}

func matchesFilters[T any](record T, filters map[string]any) bool {
	for column, want := range filters {
		got, ok := columnValue(record, column)
		if !ok {
			return false
		}
		if !looselyEqual(got, want) {
			return false
		}
	}
	return true
}

func sortByColumn[T any](records []T, order Order) {
	sort.SliceStable(records, func(i, j int) bool {
		a, _ := columnValue(records[i], order.Column)
		b, _ := columnValue(records[j], order.Column)
		less := compareValues(a, b) < 0
		if order.Desc {
			return !less
		}
		return less
	})
}

// columnValue resolves a bun column name to the field value, dereferencing
// pointers. Returns false when the model has no such column or the pointer
// is nil.
func columnValue(record any, column string) (any, bool) {
	v := reflect.ValueOf(record)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			continue
		}
		if bunColumn(field) != column {
			continue
		}
		fv := v.Field(i)
		for fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				return nil, true
			}
			fv = fv.Elem()
		}
		return fv.Interface(), true
	}
	return nil, false
}

func bunColumn(field reflect.StructField) string {
	tag := field.Tag.Get("bun")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name != "" {
		return name
	}
	return snakeCase(field.Name)
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func looselyEqual(got, want any) bool {
	if got == nil || want == nil {
		return got == nil && want == nil
	}
	if gi, ok := asInt64(got); ok {
		if wi, ok := asInt64(want); ok {
			return gi == wi
		}
	}
	return reflect.DeepEqual(got, want)
}

func asInt64(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), true
	}
	return 0, false
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case bv:
				return -1
			default:
				return 1
			}
		}
	}
	if ai, ok := asInt64(a); ok {
		if bi, ok := asInt64(b); ok {
			switch {
			case ai < bi:
				return -1
			case ai > bi:
				return 1
			default:
				return 0
			}
		}
	}
	return 0
}
