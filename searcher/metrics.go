package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetrics struct {
	StartTime time.Time
	Duration  time.Duration
	MaxDepth  int
	Nodes     int64
	Leaves    int64
	Cutoffs   int64
}

type MetricsCollector interface {
	Start(maxDepth int)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime time.Time
	maxDepth  int
	nodes     atomic.Int64
	leaves    atomic.Int64
	cutoffs   atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(maxDepth int) {
	m.startTime = time.Now()
	m.maxDepth = maxDepth
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
}

func (m *metricsCollector) AddNode() {
	m.nodes.Add(1)
}

func (m *metricsCollector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *metricsCollector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		MaxDepth:  m.maxDepth,
		Nodes:     m.nodes.Load(),
		Leaves:    m.leaves.Load(),
		Cutoffs:   m.cutoffs.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(int)               {}
func (m *noMetricsCollector) AddNode()                {}
func (m *noMetricsCollector) AddLeaf()                {}
func (m *noMetricsCollector) AddCutoff()              {}
func (m *noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
