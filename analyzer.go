package rock

import (
	"math"
	"math/rand"
)

// AnalyzePosition runs iterative deepening from depth 1 to maxDepth over a
// fresh transposition table and returns the resulting analysis, normalized
// so positive always favours White.
func AnalyzePosition(p Position, maxDepth int) PositionAnalysis {
	table := NewTranspositionTable(DefaultTTSizeLog2)
	return analyzePositionWithTable(p, maxDepth, table)
}

func analyzePositionWithTable(p Position, maxDepth int, table *TranspositionTable) PositionAnalysis {
	friends := p.Board.PiecesFor(p.PlayerToMove)
	enemies := p.Board.PiecesFor(p.PlayerToMove.Opponent())

	var rec Recommendation
	var killer Move
	for depth := 1; depth <= maxDepth; depth++ {
		rec = Search(friends, enemies, depth, -2*BIG, 2*BIG, table, killer)
		killer = rec.Move
	}

	analysis := PositionAnalysis{
		BestMove: rec.Move,
		Score:    normalizeScore(rec.Score, p.PlayerToMove),
	}
	analysis.PrincipalVariation = extractPrincipalVariation(p, table, maxDepth)
	return analysis
}

func normalizeScore(score Score, mover Player) Score {
	if mover == White {
		return score
	}
	return -score
}

// extractPrincipalVariation walks the transposition table from p, following
// Pv entries with non-empty moves, up to maxDepth plies or the first miss /
// repetition.
func extractPrincipalVariation(p Position, table *TranspositionTable, maxDepth int) []Move {
	var pv []Move
	seen := make(map[uint64]bool)
	cur := p
	for i := 0; i < maxDepth; i++ {
		friends := cur.Board.PiecesFor(cur.PlayerToMove)
		enemies := cur.Board.PiecesFor(cur.PlayerToMove.Opponent())
		key := mixKey(friends, enemies)
		if seen[key] {
			break
		}
		seen[key] = true

		entry, found := table.Lookup(friends, enemies)
		if !found || entry.Type != Pv || entry.Move.IsEmpty() {
			break
		}
		pv = append(pv, entry.Move)
		cur = ApplyMoveToPosition(entry.Move, cur)
	}
	return pv
}

// AnalyzeAvailableMoves analyzes every legal move from p at depth-1, keyed
// by the move played to reach the child position.
func AnalyzeAvailableMoves(p Position, depth int) map[Move]PositionAnalysis {
	result := make(map[Move]PositionAnalysis)
	for _, m := range ListMoves(p) {
		child := ApplyMoveToPosition(m, p)
		result[m] = AnalyzePosition(child, depth-1)
	}
	return result
}

// SelectAnalysisWithSoftmax samples one move from perMove with probability
// proportional to exp(sigma * 0.1 * score); sigma=0 is uniform, sigma -> inf
// tends toward the argmax. rng must be supplied by the caller for
// reproducibility (tests inject a seeded *rand.Rand rather than reaching for
// a package-level source).
func SelectAnalysisWithSoftmax(perMove map[Move]PositionAnalysis, sigma float64, rng *rand.Rand) PositionAnalysis {
	type candidate struct {
		move     Move
		analysis PositionAnalysis
		weight   float64
	}

	candidates := make([]candidate, 0, len(perMove))
	maxLogit := 0.0
	first := true
	for m, a := range perMove {
		logit := sigma * 0.1 * float64(a.Score)
		if first || logit > maxLogit {
			maxLogit = logit
			first = false
		}
		candidates = append(candidates, candidate{move: m, analysis: a, weight: logit})
	}

	total := 0.0
	for i := range candidates {
		candidates[i].weight = expClamped(candidates[i].weight - maxLogit)
		total += candidates[i].weight
	}

	target := rng.Float64() * total
	var chosen candidate
	cumulative := 0.0
	for _, c := range candidates {
		cumulative += c.weight
		chosen = c
		if target <= cumulative {
			break
		}
	}

	result := chosen.analysis
	result.BestMove = chosen.move
	result.PrincipalVariation = append([]Move{chosen.move}, result.PrincipalVariation...)
	return result
}

func expClamped(x float64) float64 {
	const limit = 700 // avoid math.Exp overflow near float64 max
	if x > limit {
		x = limit
	}
	if x < -limit {
		x = -limit
	}
	return math.Exp(x)
}

// difficultyLevel maps an AI difficulty level to a search depth and a
// softmax sharpness sigma. Levels >= 10 use a straight fixed-depth analysis
// instead of per-move softmax selection.
type difficultyLevel struct {
	depth int
	sigma float64
}

var difficultyTable = map[int]difficultyLevel{
	0: {depth: 1, sigma: 0.0},
	1: {depth: 1, sigma: 0.2},
	2: {depth: 2, sigma: 0.4},
	3: {depth: 3, sigma: 0.6},
	4: {depth: 3, sigma: 0.8},
	5: {depth: 3, sigma: 1.0},
	6: {depth: 4, sigma: 1.5},
	7: {depth: 4, sigma: 3.0},
	8: {depth: 5, sigma: 4.5},
	9: {depth: 6, sigma: 8.0},
}

func levelFor(level int) (depth int, sigma float64, useFixedDepth bool) {
	if level >= 10 {
		return 6 + (level - 10), 0, true
	}
	if level < 0 {
		level = 0
	}
	d := difficultyTable[level]
	return d.depth, d.sigma, false
}

// AnalyzePositionWithAIDifficultyLevel maps level to a depth/sigma per the
// difficulty table and either runs fixed-depth analysis (level >= 10) or
// per-move analysis followed by softmax selection.
func AnalyzePositionWithAIDifficultyLevel(p Position, level int, rng *rand.Rand) PositionAnalysis {
	depth, sigma, useFixedDepth := levelFor(level)
	if useFixedDepth {
		return AnalyzePosition(p, depth)
	}
	perMove := AnalyzeAvailableMoves(p, depth)
	if len(perMove) == 0 {
		return PositionAnalysis{Score: normalizeScore(EvaluateLeaf(p.Board.PiecesFor(p.PlayerToMove), p.Board.PiecesFor(p.PlayerToMove.Opponent())), p.PlayerToMove)}
	}

	// perMove scores are normalized White-favoring (AnalyzePosition on each
	// child always reports that way), but softmax needs logits from the
	// mover's own perspective. Flip the sign going in for Black, then flip
	// the winner's score back so the result still obeys the White-favoring
	// convention.
	forSoftmax := perMove
	if p.PlayerToMove == Black {
		forSoftmax = make(map[Move]PositionAnalysis, len(perMove))
		for m, a := range perMove {
			a.Score = -a.Score
			forSoftmax[m] = a
		}
	}

	result := SelectAnalysisWithSoftmax(forSoftmax, sigma, rng)
	if p.PlayerToMove == Black {
		result.Score = -result.Score
	}
	return result
}
