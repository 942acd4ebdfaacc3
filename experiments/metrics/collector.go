package metrics

import (
	"sync/atomic"
	"time"

	"diago/game"
)

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	FullPlayouts int
	CacheHits    int
	CacheMisses  int
	IsTreeReset  bool
}

type MoveMetric struct {
	Step   int
	Player game.Player
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Winner         game.Player
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines, cutoff int)
	SetTreeReset(value bool)
	AddFullPlayout()
	AddEpisode()
	AddCacheHit()
	AddCacheMiss()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	cacheHits    atomic.Int32
	cacheMisses  atomic.Int32
	isTreeReset  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, cutoff int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.cacheHits.Store(0)
	m.cacheMisses.Store(0)
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddCacheHit() {
	m.cacheHits.Add(1)
}

func (m *collector) AddCacheMiss() {
	m.cacheMisses.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		Cutoff:       m.cutoff,
		FullPlayouts: int(m.fullPlayouts.Load()),
		CacheHits:    int(m.cacheHits.Load()),
		CacheMisses:  int(m.cacheMisses.Load()),
		IsTreeReset:  m.isTreeReset.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, cutoff int) {}
func (m *dummyCollector) SetTreeReset(value bool)      {}
func (m *dummyCollector) AddFullPlayout()              {}
func (m *dummyCollector) AddEpisode()                  {}
func (m *dummyCollector) AddCacheHit()                 {}
func (m *dummyCollector) AddCacheMiss()                {}
func (m *dummyCollector) Complete() SearchMetric       { return SearchMetric{} }
