package opencrmtest

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

// MemoryStore holds the records of every module, keyed by module slug then
// crmid. Values are kept as the strings OpenCRM returns.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[int]map[string]string
	nextID  int
}

// NewMemoryStore creates an empty store. Ids start at 1000.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]map[int]map[string]string),
		nextID:  1000,
	}
}

// Insert stores a new record and returns its crmid.
func (s *MemoryStore) Insert(module opencrm.Module, fields map[string]string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	record := make(map[string]string, len(fields)+2)
	for key, value := range fields {
		record[key] = value
	}

	record[constants.FieldCRMID] = strconv.Itoa(id)
	record["record_module"] = module.Name

	if s.records[module.Slug] == nil {
		s.records[module.Slug] = make(map[int]map[string]string)
	}

	s.records[module.Slug][id] = record

	return id
}

// Update merges fields into an existing record.
func (s *MemoryStore) Update(module opencrm.Module, id int, fields map[string]string) (map[string]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[module.Slug][id]
	if !ok {
		return nil, false
	}

	for key, value := range fields {
		if key == constants.FieldCRMID {
			continue
		}

		record[key] = value
	}

	return copyRecord(record), true
}

// Get returns a copy of a record.
func (s *MemoryStore) Get(module opencrm.Module, id int) (map[string]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[module.Slug][id]
	if !ok {
		return nil, false
	}

	return copyRecord(record), true
}

// Find returns copies of the records matching query and keywords, in crmid
// order.
func (s *MemoryStore) Find(module opencrm.Module, query *opencrm.Query, keywords string) []map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.records[module.Slug]))
	for id := range s.records[module.Slug] {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	matches := make([]map[string]string, 0, len(ids))

	for _, id := range ids {
		record := s.records[module.Slug][id]
		if query != nil && !matchQuery(record, *query) {
			continue
		}

		if keywords != "" && !matchKeywords(record, keywords) {
			continue
		}

		matches = append(matches, copyRecord(record))
	}

	return matches
}

// Reset removes every record.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]map[int]map[string]string)
}

func copyRecord(record map[string]string) map[string]string {
	out := make(map[string]string, len(record))
	for key, value := range record {
		out[key] = value
	}

	return out
}

func matchQuery(record map[string]string, query opencrm.Query) bool {
	value, ok := record[query.Field()]
	if !ok {
		return false
	}

	actual := strings.ToLower(value)
	expected := strings.ToLower(query.Value())

	switch query.Operator() {
	case opencrm.OpEquals:
		return actual == expected
	case opencrm.OpBegins:
		return strings.HasPrefix(actual, expected)
	case opencrm.OpEnds:
		return strings.HasSuffix(actual, expected)
	case opencrm.OpContains:
		return strings.Contains(actual, expected)
	case opencrm.OpLike:
		return matchLike(actual, expected)
	default:
		return false
	}
}

// matchLike implements SQL LIKE with % wildcards only.
func matchLike(value, pattern string) bool {
	parts := strings.Split(pattern, "%")
	if len(parts) == 1 {
		return value == pattern
	}

	if !strings.HasPrefix(value, parts[0]) {
		return false
	}

	value = value[len(parts[0]):]
	last := parts[len(parts)-1]

	for _, part := range parts[1 : len(parts)-1] {
		index := strings.Index(value, part)
		if index < 0 {
			return false
		}

		value = value[index+len(part):]
	}

	return strings.HasSuffix(value, last)
}

func matchKeywords(record map[string]string, keywords string) bool {
	needle := strings.ToLower(keywords)

	for _, value := range record {
		if strings.Contains(strings.ToLower(value), needle) {
			return true
		}
	}

	return false
}
