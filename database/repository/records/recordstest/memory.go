// Package recordstest provides an in-memory RecordRepository for service tests.
package recordstest

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	recordsRepo "salonhub/database/repository/records"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Memory keeps records in insertion order. Filters support plain equality
// and {"$ne": v} on top-level fields; Search is a case-insensitive substring
// match over SearchFields.
type Memory[T any, P recordsRepo.Record[T]] struct {
	mu    sync.Mutex
	order []string
	docs  map[string]T

	// Err, when set, is returned by every call.
	Err error
}

func NewMemory[T any, P recordsRepo.Record[T]](seed ...T) *Memory[T, P] {
	m := &Memory[T, P]{docs: map[string]T{}}
	for i := range seed {
		doc := seed[i]
		id := P(&doc).Meta().ID
		m.order = append(m.order, id)
		m.docs[id] = doc
	}
	return m
}

func (m *Memory[T, P]) miss(id string) error {
	return fmt.Errorf("record %s: %w", id, mongo.ErrNoDocuments)
}

func (m *Memory[T, P]) Create(_ context.Context, doc *T) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	meta := P(doc).Meta()
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	meta.CreatedAt = time.Now()
	meta.UpdatedAt = meta.CreatedAt
	if _, dup := m.docs[meta.ID]; dup {
		return fmt.Errorf("duplicate id %s", meta.ID)
	}
	m.order = append(m.order, meta.ID)
	m.docs[meta.ID] = *doc
	return nil
}

func (m *Memory[T, P]) Update(_ context.Context, doc *T) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	meta := P(doc).Meta()
	old, ok := m.docs[meta.ID]
	if !ok {
		return m.miss(meta.ID)
	}
	meta.CreatedAt = P(&old).Meta().CreatedAt
	meta.UpdatedAt = time.Now()
	m.docs[meta.ID] = *doc
	return nil
}

func (m *Memory[T, P]) remove(id string) {
	delete(m.docs, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

func (m *Memory[T, P]) Delete(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return m.miss(id)
	}
	m.remove(id)
	return nil
}

func (m *Memory[T, P]) DeleteWhere(_ context.Context, filter bson.M) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range append([]string(nil), m.order...) {
		if matches(m.docs[id], filter) {
			m.remove(id)
			n++
		}
	}
	return n, nil
}

func (m *Memory[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	return m.FindOne(ctx, bson.M{"id": id})
}

func (m *Memory[T, P]) FindOne(_ context.Context, filter bson.M) (*T, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.order {
		if doc := m.docs[id]; matches(doc, filter) {
			return &doc, nil
		}
	}
	return nil, m.miss(fmt.Sprint(filter))
}

func (m *Memory[T, P]) List(_ context.Context, opts recordsRepo.ListOptions) ([]T, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []T{}
	for _, id := range m.order {
		doc := m.docs[id]
		if !matches(doc, opts.Filter) || !searchHit(doc, opts) {
			continue
		}
		out = append(out, doc)
		if opts.Limit > 0 && int64(len(out)) == opts.Limit {
			break
		}
	}
	return out, nil
}

func (m *Memory[T, P]) Count(ctx context.Context, filter bson.M) (int64, error) {
	docs, err := m.List(ctx, recordsRepo.ListOptions{Filter: filter})
	return int64(len(docs)), err
}

// Len reports the number of stored records.
func (m *Memory[T, P]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

func asMap(doc any) bson.M {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return bson.M{}
	}
	var out bson.M
	if err := bson.Unmarshal(raw, &out); err != nil {
		return bson.M{}
	}
	return out
}

func matches(doc any, filter bson.M) bool {
	if len(filter) == 0 {
		return true
	}
	fields := asMap(doc)
	for k, want := range filter {
		got := fields[k]
		if cond, ok := want.(bson.M); ok {
			if ne, ok := cond["$ne"]; ok {
				if reflect.DeepEqual(got, ne) {
					return false
				}
				continue
			}
		}
		if !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func searchHit(doc any, opts recordsRepo.ListOptions) bool {
	q := strings.ToLower(strings.TrimSpace(opts.Search))
	if q == "" || len(opts.SearchFields) == 0 {
		return true
	}
	fields := asMap(doc)
	for _, f := range opts.SearchFields {
		if s, ok := fields[f].(string); ok && strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
