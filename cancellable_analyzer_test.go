package rock

import (
	"sync"
	"testing"
	"time"
)

func TestGameAnalyzerRunsToMaxDepth(t *testing.T) {
	g := NewGameAnalyzer()
	g.SetMaxDepth(3)

	analysis := g.AnalyzePosition(StartingPosition)
	if analysis.BestMove.IsEmpty() {
		t.Fatalf("expected a best move after analysis completes")
	}
	if g.IsAnalysisOngoing() {
		t.Fatalf("analysis should no longer be ongoing once AnalyzePosition returns")
	}
	if g.CurrentDepth() != 3 {
		t.Fatalf("expected CurrentDepth() == 3 after completing, got %d", g.CurrentDepth())
	}
}

func TestGameAnalyzerReportCallbackFiresPerDepth(t *testing.T) {
	g := NewGameAnalyzer()
	g.SetMaxDepth(3)

	var mu sync.Mutex
	depthsSeen := make([]int, 0, 3)
	g.SetReportCallback(func(a *GameAnalyzer) {
		mu.Lock()
		depthsSeen = append(depthsSeen, a.CurrentDepth())
		mu.Unlock()
	})

	g.AnalyzePosition(StartingPosition)

	mu.Lock()
	defer mu.Unlock()
	if len(depthsSeen) != 3 {
		t.Fatalf("expected 3 report callbacks, got %d (%v)", len(depthsSeen), depthsSeen)
	}
}

// TestGameAnalyzerStopFromAnotherGoroutine starts a deep analysis, cancels
// it from another goroutine, and verifies the analyzer leaves a valid,
// legal best-so-far behind.
func TestGameAnalyzerStopFromAnotherGoroutine(t *testing.T) {
	g := NewGameAnalyzer()
	g.SetMaxDepth(100)

	done := make(chan PositionAnalysis, 1)
	go func() {
		done <- g.AnalyzePosition(StartingPosition)
	}()

	// Give the analyzer a little time to complete at least one depth before
	// requesting cancellation.
	time.Sleep(20 * time.Millisecond)
	g.StopAnalysis()

	var result PositionAnalysis
	select {
	case result = <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("analysis did not stop within the timeout")
	}

	if g.IsAnalysisOngoing() {
		t.Fatalf("IsAnalysisOngoing() should be false after a stopped analysis returns")
	}
	if g.CurrentDepth() < 1 {
		t.Fatalf("expected at least one completed depth, got %d", g.CurrentDepth())
	}
	if result.BestMove.IsEmpty() {
		t.Fatalf("expected a non-empty best move after cancellation")
	}
	if !IsMoveLegal(result.BestMove, StartingPosition) {
		t.Fatalf("best-so-far move %v must be legal", result.BestMove)
	}
}

func TestGameAnalyzerRefusesConcurrentReentry(t *testing.T) {
	g := NewGameAnalyzer()
	g.SetMaxDepth(100)

	started := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		close(started)
		g.AnalyzePosition(StartingPosition)
		close(finished)
	}()

	<-started
	time.Sleep(5 * time.Millisecond)
	// A reentrant call while the first is running must return immediately
	// with whatever best-so-far is available, rather than starting a second
	// concurrent search.
	second := g.AnalyzePosition(StartingPosition)
	_ = second

	g.StopAnalysis()
	<-finished
}
