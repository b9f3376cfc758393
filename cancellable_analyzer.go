package rock

import (
	"sync"
	"sync/atomic"
)

// GameAnalyzer is a stateful, cancellable iterative-deepening analyzer. It
// owns its own transposition table and stop flag: the stop flag (an
// atomic.Bool) is the only datum the searcher reads across goroutines, and it
// is never used to synchronize anything else. The settings and progress
// fields read by other goroutines are guarded by mu or are atomics.
type GameAnalyzer struct {
	mu           sync.Mutex
	table        *TranspositionTable
	maxDepth     int
	reportFn     func(*GameAnalyzer)
	thinking     atomic.Bool
	stopFlag     atomic.Bool
	currentDepth atomic.Int64
	bestSoFar    PositionAnalysis
	bestSoFarSet bool
}

// NewGameAnalyzer builds an analyzer using the current Config's max depth
// and transposition table size.
func NewGameAnalyzer() *GameAnalyzer {
	cfg := GetConfig()
	return &GameAnalyzer{
		table:    NewTranspositionTable(cfg.TTSizeLog2),
		maxDepth: cfg.MaxDepth,
	}
}

func (g *GameAnalyzer) SetMaxDepth(n int) {
	g.mu.Lock()
	g.maxDepth = n
	g.mu.Unlock()
}

func (g *GameAnalyzer) SetReportCallback(f func(*GameAnalyzer)) {
	g.mu.Lock()
	g.reportFn = f
	g.mu.Unlock()
}

func (g *GameAnalyzer) IsAnalysisOngoing() bool { return g.thinking.Load() }

func (g *GameAnalyzer) CurrentDepth() int { return int(g.currentDepth.Load()) }

func (g *GameAnalyzer) BestAnalysisSoFar() PositionAnalysis {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bestSoFar
}

// StopAnalysis requests cancellation. It is advisory: the searcher only
// polls the stop flag between sibling moves at depths >= killerPollDepth, so
// a bounded amount of extra work may still complete after this returns.
func (g *GameAnalyzer) StopAnalysis() {
	g.stopFlag.Store(true)
}

// AnalyzePosition blocks performing iterative deepening from depth 1 up to
// the configured max depth, invoking the report callback every
// Config.ReportIntervalDepths completed depths (always on the last depth
// reached and on cancellation), until the stop flag is observed or max depth
// is reached.
func (g *GameAnalyzer) AnalyzePosition(p Position) PositionAnalysis {
	g.mu.Lock()
	maxDepth := g.maxDepth
	reportFn := g.reportFn
	g.mu.Unlock()

	reportInterval := GetConfig().ReportIntervalDepths
	if reportInterval <= 0 {
		reportInterval = 1
	}

	if g.thinking.Swap(true) {
		// Already analyzing; refuse a concurrent call from another goroutine.
		return g.BestAnalysisSoFar()
	}
	defer g.thinking.Store(false)

	g.table.Reset()
	g.stopFlag.Store(false)
	g.mu.Lock()
	g.bestSoFar = PositionAnalysis{}
	g.bestSoFarSet = false
	g.mu.Unlock()
	g.currentDepth.Store(0)

	friends := p.Board.PiecesFor(p.PlayerToMove)
	enemies := p.Board.PiecesFor(p.PlayerToMove.Opponent())

	var killer Move
	for depth := 1; depth <= maxDepth; depth++ {
		rec, valid := searchWithCancellation(friends, enemies, depth, -2*BIG, 2*BIG, g.table, killer, &g.stopFlag)
		if valid {
			killer = rec.Move
			analysis := PositionAnalysis{
				BestMove: rec.Move,
				Score:    normalizeScore(rec.Score, p.PlayerToMove),
			}
			analysis.PrincipalVariation = extractPrincipalVariation(p, g.table, depth)

			g.mu.Lock()
			g.bestSoFar = analysis
			g.bestSoFarSet = true
			g.mu.Unlock()
			g.currentDepth.Store(int64(depth))
		}

		stopped := g.stopFlag.Load()
		dueForReport := depth%reportInterval == 0 || depth == maxDepth || stopped
		if reportFn != nil && dueForReport {
			reportFn(g)
		}

		if stopped {
			break
		}
	}

	return g.BestAnalysisSoFar()
}
