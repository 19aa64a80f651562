package database

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps JSON documents in process memory. Transactions are
// serialized and rolled back by restoring a snapshot; writes made outside
// a transaction while one is running are not isolated from that rollback.
type MemoryStore struct {
	mu    sync.RWMutex
	txMu  sync.Mutex
	colls map[string]*memData
}

type memData struct {
	docs   map[string]memDoc
	unique map[string]bool
	seq    int64
}

// memDoc is never mutated after it is stored
type memDoc struct {
	raw    []byte
	fields map[string]any
	seq    int64
}

type memTxKey struct{}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{colls: make(map[string]*memData)}
}

func (s *MemoryStore) Driver() string { return "memory" }

func (s *MemoryStore) Collection(name string) Collection {
	if err := checkIdentifier("collection", name); err != nil {
		panic(err)
	}
	return &memCollection{store: s, name: name}
}

func (s *MemoryStore) CreateCollection(_ context.Context, name string) error {
	if err := checkIdentifier("collection", name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data(name)
	return nil
}

// data must be called with s.mu held for writing
func (s *MemoryStore) data(name string) *memData {
	d, ok := s.colls[name]
	if !ok {
		d = &memData{docs: make(map[string]memDoc), unique: make(map[string]bool)}
		s.colls[name] = d
	}
	return d
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapshot := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snapshot)
			panic(p)
		} else if err != nil {
			s.restore(snapshot)
		}
	}()

	return fn(context.WithValue(ctx, memTxKey{}, true))
}

func (s *MemoryStore) snapshot() map[string]*memData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*memData, len(s.colls))
	for name, d := range s.colls {
		cp := &memData{
			docs:   make(map[string]memDoc, len(d.docs)),
			unique: make(map[string]bool, len(d.unique)),
			seq:    d.seq,
		}
		for id, doc := range d.docs {
			cp.docs[id] = doc
		}
		for field, u := range d.unique {
			cp.unique[field] = u
		}
		out[name] = cp
	}
	return out
}

func (s *MemoryStore) restore(snapshot map[string]*memData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colls = snapshot
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close(_ context.Context) error {
	return nil
}

type memCollection struct {
	store *MemoryStore
	name  string
}

func newMemDoc(doc any, seq int64) (memDoc, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return memDoc{}, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return memDoc{}, err
	}
	return memDoc{raw: raw, fields: fields, seq: seq}, nil
}

func (c *memCollection) Insert(ctx context.Context, id string, doc any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	d := c.store.data(c.name)

	if _, exists := d.docs[id]; exists {
		return fmt.Errorf("insert %s %s: %w", c.name, id, ErrDuplicate)
	}

	entry, err := newMemDoc(doc, d.seq+1)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", c.name, err)
	}
	if err := c.checkUnique(d, id, entry); err != nil {
		return err
	}

	d.seq++
	d.docs[id] = entry
	return nil
}

func (c *memCollection) FindByID(ctx context.Context, id string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	d, ok := c.store.colls[c.name]
	if !ok {
		return ErrNotFound
	}
	doc, ok := d.docs[id]
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(doc.raw, out)
}

func (c *memCollection) FindOne(ctx context.Context, filter Filter, out any) error {
	matched, err := c.match(ctx, Query{Filter: filter, Sort: "createdAt"})
	if err != nil {
		return err
	}
	if len(matched) == 0 {
		return ErrNotFound
	}
	return json.Unmarshal(matched[0].raw, out)
}

func (c *memCollection) Find(ctx context.Context, q Query, out any) error {
	matched, err := c.match(ctx, q)
	if err != nil {
		return err
	}

	start := min(max(q.Offset, 0), len(matched))
	end := len(matched)
	if q.Limit > 0 {
		end = min(start+q.Limit, len(matched))
	}

	docs := make([]json.RawMessage, 0, end-start)
	for _, doc := range matched[start:end] {
		docs = append(docs, doc.raw)
	}

	all, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return json.Unmarshal(all, out)
}

func (c *memCollection) Count(ctx context.Context, q Query) (int64, error) {
	q.Sort = "_id"
	matched, err := c.match(ctx, q)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

func (c *memCollection) Replace(ctx context.Context, id string, doc any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	d := c.store.data(c.name)

	current, ok := d.docs[id]
	if !ok {
		return ErrNotFound
	}

	entry, err := newMemDoc(doc, current.seq)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", c.name, err)
	}
	if err := c.checkUnique(d, id, entry); err != nil {
		return err
	}

	d.docs[id] = entry
	return nil
}

func (c *memCollection) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	d := c.store.data(c.name)

	if _, ok := d.docs[id]; !ok {
		return ErrNotFound
	}
	delete(d.docs, id)
	return nil
}

func (c *memCollection) EnsureIndex(_ context.Context, field string, unique bool) error {
	if err := checkField(field); err != nil {
		return err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if unique {
		c.store.data(c.name).unique[field] = true
	}
	return nil
}

// checkUnique must be called with the store lock held
func (c *memCollection) checkUnique(d *memData, id string, entry memDoc) error {
	for field := range d.unique {
		value, ok := entry.fields[field]
		if !ok || value == nil {
			continue
		}
		for otherID, other := range d.docs {
			if otherID != id && reflect.DeepEqual(other.fields[field], value) {
				return fmt.Errorf("%s.%s %v: %w", c.name, field, value, ErrDuplicate)
			}
		}
	}
	return nil
}

func (c *memCollection) match(ctx context.Context, q Query) ([]memDoc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	want, err := normalizeFilter(q.Filter)
	if err != nil {
		return nil, err
	}
	term := ""
	if q.hasSearch() {
		term = strings.ToLower(strings.TrimSpace(q.Search.Term))
	}

	c.store.mu.RLock()
	var matched []memDoc
	if d, ok := c.store.colls[c.name]; ok {
		for _, doc := range d.docs {
			if docMatches(doc, want, q, term) {
				matched = append(matched, doc)
			}
		}
	}
	c.store.mu.RUnlock()

	field, desc := q.sortField()
	sort.SliceStable(matched, func(i, j int) bool {
		cmp := compareValues(matched[i].fields[field], matched[j].fields[field])
		if cmp == 0 {
			cmp = compareInt(matched[i].seq, matched[j].seq)
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return matched, nil
}

func docMatches(doc memDoc, want map[string]any, q Query, term string) bool {
	for k, v := range want {
		if !reflect.DeepEqual(doc.fields[k], v) {
			return false
		}
	}

	if term != "" {
		found := false
		for _, field := range q.Search.Fields {
			if s, ok := doc.fields[field].(string); ok && strings.Contains(strings.ToLower(s), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if q.NonEmpty != "" {
		arr, ok := doc.fields[q.NonEmpty].([]any)
		if !ok || len(arr) == 0 {
			return false
		}
	}
	return true
}

// normalizeFilter round-trips filter values through JSON so they compare
// equal to decoded document fields.
func normalizeFilter(filter Filter) (map[string]any, error) {
	if len(filter) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case nil:
		if b == nil {
			return 0
		}
		return -1
	case string:
		bv, ok := b.(string)
		if !ok {
			return 1
		}
		ta, errA := time.Parse(time.RFC3339Nano, av)
		tb, errB := time.Parse(time.RFC3339Nano, bv)
		if errA == nil && errB == nil {
			return ta.Compare(tb)
		}
		return strings.Compare(av, bv)
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 1
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case bool:
		bv, _ := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	}
	if b == nil {
		return 1
	}
	return 0
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
