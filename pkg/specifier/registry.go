package specifier

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// categoryState holds one category's records. loaded distinguishes a
// category that never loaded (fetch or parse failed) from one that loaded
// an empty catalog; lookups treat both as misses, but the difference is
// visible in logs and in Counts.
type categoryState struct {
	records []Record
	loaded  bool
}

// Registry owns the in-memory record lists for all four categories.
// Replace swaps a category's whole list in one step, so a lookup running
// concurrently with a refresh sees either the old list or the new one,
// never a partially written list.
type Registry struct {
	mu     sync.RWMutex
	byCat  map[Category]*categoryState
	logger *zap.Logger
}

// NewRegistry returns an empty registry; every category starts not-loaded.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	byCat := make(map[Category]*categoryState, len(Categories()))
	for _, c := range Categories() {
		byCat[c] = &categoryState{}
	}
	return &Registry{byCat: byCat, logger: logger}
}

// Replace installs records as the complete list for cat, discarding the
// previous list.
func (r *Registry) Replace(cat Category, records []Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCat[cat] = &categoryState{records: records, loaded: true}
	r.logger.Info("category replaced",
		zap.String("category", cat.String()),
		zap.Int("records", len(records)))
}

// MarkNotLoaded flags cat as having no usable data. The previous list, if
// any, is dropped so a failed refresh cannot leave stale records behind a
// "loaded" flag.
func (r *Registry) MarkNotLoaded(cat Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCat[cat] = &categoryState{}
	r.logger.Warn("category marked not loaded", zap.String("category", cat.String()))
}

// Loaded reports whether cat has been populated since the last refresh.
func (r *Registry) Loaded(cat Category) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byCat[cat].loaded
}

// Counts returns the record count per loaded category. Not-loaded
// categories are absent from the result.
func (r *Registry) Counts() map[Category]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[Category]int)
	for cat, st := range r.byCat {
		if st.loaded {
			counts[cat] = len(st.records)
		}
	}
	return counts
}

// LookupExact returns the first record in cat whose name equals name
// exactly (case-sensitive). A not-loaded category is a miss, not an
// error; end users only ever see "not found" either way.
func (r *Registry) LookupExact(cat Category, name string) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.byCat[cat]
	if !ok {
		return Record{}, false
	}
	if !st.loaded {
		r.logger.Debug("lookup against not-loaded category",
			zap.String("category", cat.String()), zap.String("name", name))
		return Record{}, false
	}
	for _, rec := range st.records {
		if rec.Name == name {
			return rec, true
		}
	}
	return Record{}, false
}

// LookupAcrossAll scans categories in the fixed order returned by
// Categories and returns the first exact match. A name colliding across
// categories therefore always resolves to the same category.
func (r *Registry) LookupAcrossAll(name string) (Category, Record, bool) {
	for _, cat := range Categories() {
		if rec, ok := r.LookupExact(cat, name); ok {
			return cat, rec, true
		}
	}
	return "", Record{}, false
}

// SuggestNames returns every record name across all loaded categories
// matching prefix case-insensitively, deduplicated and sorted. An empty
// prefix matches everything. Not-loaded categories contribute nothing.
func (r *Registry) SuggestNames(prefix string) []string {
	lower := strings.ToLower(prefix)
	seen := make(map[string]struct{})

	r.mu.RLock()
	for _, cat := range Categories() {
		st := r.byCat[cat]
		if !st.loaded {
			continue
		}
		for _, rec := range st.records {
			if strings.HasPrefix(strings.ToLower(rec.Name), lower) {
				seen[rec.Name] = struct{}{}
			}
		}
	}
	r.mu.RUnlock()

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
