package metrics

import (
	"sync"
	"time"

	"reversi/game"
	"reversi/searcher"
)

type AgentConfig struct {
	ID     int
	Option string // seat option, e.g. cpu-hard
}

type MoveMetric struct {
	Step  int
	Agent int    // AgentConfig.ID
	Side  string // First or Second
	searcher.SearchMetrics
}

type GameMetric struct {
	StartingAgent int    // AgentConfig.ID playing First
	Winner        string // First, Second or Tie
	WinnerAgent   int    // 0 on a tie
	FirstDiscs    int
	SecondDiscs   int
	OpeningPlies  int
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalMoves    int
	Passes        int
}

// Collector gathers the metrics of one game. Moves may be reported from the
// goroutines that ran the searches.
type Collector interface {
	Start(startingAgent, openingPlies int)
	AddMove(agent int, side game.Player, search searcher.SearchMetrics)
	AddPass()
	Complete(result game.Result, winnerAgent int) (GameMetric, []MoveMetric)
}

type collector struct {
	mu            sync.Mutex
	startingAgent int
	openingPlies  int
	startTime     time.Time
	moves         []MoveMetric
	passes        int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(startingAgent, openingPlies int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startingAgent = startingAgent
	m.openingPlies = openingPlies
	m.startTime = time.Now()
	m.moves = nil
	m.passes = 0
}

func (m *collector) AddMove(agent int, side game.Player, search searcher.SearchMetrics) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moves = append(m.moves, MoveMetric{
		Step:          len(m.moves) + 1,
		Agent:         agent,
		Side:          side.String(),
		SearchMetrics: search,
	})
}

func (m *collector) AddPass() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passes++
}

func (m *collector) Complete(result game.Result, winnerAgent int) (GameMetric, []MoveMetric) {
	m.mu.Lock()
	defer m.mu.Unlock()
	end := time.Now()
	winner := result.Winner.String()
	if result.Tie() {
		winner = "Tie"
	}
	return GameMetric{
		StartingAgent: m.startingAgent,
		Winner:        winner,
		WinnerAgent:   winnerAgent,
		FirstDiscs:    result.First,
		SecondDiscs:   result.Second,
		OpeningPlies:  m.openingPlies,
		StartTime:     m.startTime,
		EndTime:       end,
		Duration:      end.Sub(m.startTime),
		TotalMoves:    len(m.moves),
		Passes:        m.passes,
	}, append([]MoveMetric(nil), m.moves...)
}
