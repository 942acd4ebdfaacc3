package searcher

import (
	"sort"
	"sync"

	"diago/game"
)

// Entry is one cached evaluation. Value is a score in [0, 1] from
// Perspective's point of view; Depth is the lookahead the value represents,
// so deeper results are never overwritten by shallower ones.
type Entry struct {
	Value       float64
	Perspective game.Player
	Depth       int
	Best        game.Action
}

type record struct {
	Entry
	hits     uint64
	lastUsed uint64
}

// Table is a bounded transposition cache keyed by position hash. Probe and
// Store serialize under one mutex so a table may be shared by concurrent
// search workers. Entries live for the process lifetime at most; when the
// table outgrows its capacity, the entries with the lowest (hits, recency)
// composite are evicted down to 75% capacity.
type Table struct {
	mu       sync.Mutex
	capacity int
	seq      uint64
	records  map[game.StateHash]*record
}

const DefaultTableCapacity = 1 << 16

func NewTable(capacity int) *Table {
	if capacity <= 0 {
		capacity = DefaultTableCapacity
	}
	return &Table{
		capacity: capacity,
		records:  make(map[game.StateHash]*record, capacity),
	}
}

// Probe looks up a cached entry computed at minDepth or deeper. Shallower
// entries count as misses.
func (t *Table) Probe(key game.StateHash, minDepth int) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[key]
	if !ok || rec.Depth < minDepth {
		return Entry{}, false
	}
	rec.hits++
	t.seq++
	rec.lastUsed = t.seq
	return rec.Entry, true
}

// Store caches an entry unless an existing one was computed deeper.
func (t *Table) Store(key game.StateHash, e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if rec, ok := t.records[key]; ok {
		if e.Depth < rec.Depth {
			return
		}
		t.seq++
		rec.Entry = e
		rec.lastUsed = t.seq
		return
	}

	t.seq++
	t.records[key] = &record{Entry: e, lastUsed: t.seq}
	if len(t.records) > t.capacity {
		t.evict()
	}
}

// Len returns the number of cached entries.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.records)
}

func (t *Table) evict() {
	type victim struct {
		key game.StateHash
		rec *record
	}
	victims := make([]victim, 0, len(t.records))
	for key, rec := range t.records {
		victims = append(victims, victim{key, rec})
	}
	sort.Slice(victims, func(i, j int) bool {
		if victims[i].rec.hits != victims[j].rec.hits {
			return victims[i].rec.hits < victims[j].rec.hits
		}
		return victims[i].rec.lastUsed < victims[j].rec.lastUsed
	})

	target := t.capacity * 3 / 4
	for _, v := range victims {
		if len(t.records) <= target {
			break
		}
		delete(t.records, v.key)
	}
}
