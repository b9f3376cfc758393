package rock

import "sync/atomic"

// defaultKillerPollDepth is used when Config.KillerPollDepth is unset (<= 0).
const defaultKillerPollDepth = 5

// searcher implements one negamax/alpha-beta/NegaScout recursion. It is
// constructed fresh for every node; the transposition table is the only
// state shared across the whole search tree. killerPollDepth,
// enableNegaScout and enableKillerMoves are snapshotted once at the root
// from the current Config and propagated to every child, so a single
// search sees a consistent set of tuning knobs even if the config changes
// mid-search.
type searcher struct {
	friends, enemies BitBoard
	depth            int
	alpha, beta      Score
	table            *TranspositionTable
	killerMove       Move

	killerPollDepth   int
	enableNegaScout   bool
	enableKillerMoves bool

	nextKillerMove Move
	best           Recommendation
	nodeType       NodeType
	moveCount      uint64

	// stopFlag, when non-nil, is polled between sibling moves at depths >=
	// killerPollDepth. It is owned by a GameAnalyzer and must only be
	// read, never written, by the searcher.
	stopFlag *atomic.Bool
	stopped  bool
}

func tuningFromConfig(cfg Config) (killerPollDepth int, enableNegaScout, enableKillerMoves bool) {
	killerPollDepth = cfg.KillerPollDepth
	if killerPollDepth <= 0 {
		killerPollDepth = defaultKillerPollDepth
	}
	return killerPollDepth, cfg.EnableNegaScout, cfg.EnableKillerMoves
}

// Search runs negamax search over (friends, enemies) at the given depth and
// window, using table for lookups/writes and killerMove as a move to try
// early. It returns a fail-soft recommendation: the returned score may lie
// outside [alpha, beta]. Tuning knobs (NegaScout, killer moves, the stop-flag
// poll depth) are read from the current Config.
func Search(friends, enemies BitBoard, depth int, alpha, beta Score, table *TranspositionTable, killerMove Move) Recommendation {
	killerPollDepth, enableNegaScout, enableKillerMoves := tuningFromConfig(GetConfig())
	if !enableKillerMoves {
		killerMove = Move{}
	}
	s := &searcher{
		friends: friends, enemies: enemies, depth: depth, alpha: alpha, beta: beta, table: table, killerMove: killerMove,
		killerPollDepth: killerPollDepth, enableNegaScout: enableNegaScout, enableKillerMoves: enableKillerMoves,
	}
	return s.search()
}

// searchWithCancellation is identical to Search but propagates a stop flag
// down the recursion for cooperative cancellation. valid is false when the
// root itself was cancelled before processing any move — the caller should
// discard the result and keep its previous best-so-far.
func searchWithCancellation(friends, enemies BitBoard, depth int, alpha, beta Score, table *TranspositionTable, killerMove Move, stopFlag *atomic.Bool) (rec Recommendation, valid bool) {
	killerPollDepth, enableNegaScout, enableKillerMoves := tuningFromConfig(GetConfig())
	if !enableKillerMoves {
		killerMove = Move{}
	}
	s := &searcher{
		friends: friends, enemies: enemies, depth: depth, alpha: alpha, beta: beta, table: table, killerMove: killerMove,
		killerPollDepth: killerPollDepth, enableNegaScout: enableNegaScout, enableKillerMoves: enableKillerMoves,
		stopFlag: stopFlag,
	}
	rec = s.search()
	valid = !(s.stopped && s.moveCount == 0)
	return rec, valid
}

// searchNext recurses one ply down. valid is false only when the child was
// cancelled before it had processed even one move of its own — in that case
// it has no usable result and the caller must not let it influence alpha or
// best; a frame cancelled before any child move is processed contributes
// nothing, and the parent falls back on its own best-so-far.
func (s *searcher) searchNext(friends, enemies BitBoard, alpha, beta Score) (rec Recommendation, valid bool) {
	nextKiller := s.nextKillerMove
	if !s.enableKillerMoves {
		nextKiller = Move{}
	}
	child := &searcher{
		friends: friends, enemies: enemies, depth: s.depth - 1,
		alpha: alpha, beta: beta, table: s.table, killerMove: nextKiller,
		killerPollDepth: s.killerPollDepth, enableNegaScout: s.enableNegaScout, enableKillerMoves: s.enableKillerMoves,
		stopFlag: s.stopFlag,
	}
	result := child.search()
	if child.stopped {
		s.stopped = true
		if child.moveCount == 0 {
			return result, false
		}
	}
	return result, true
}

func (s *searcher) search() Recommendation {
	if s.depth == 0 {
		return Recommendation{Move: Move{}, Score: EvaluateLeaf(s.friends, s.enemies)}
	}
	s.mainSearch()
	if !(s.stopped && s.moveCount == 0) {
		s.addToTranspositionTable()
	}
	return s.best
}

func (s *searcher) processMove(move Move) {
	friendsCopy, enemiesCopy := s.friends, s.enemies
	applyMoveLowLevel(move.From.BitBoard(), move.To.BitBoard(), &friendsCopy, &enemiesCopy)

	var result Recommendation
	var score Score
	var valid bool

	if s.enableNegaScout && s.moveCount > 0 {
		result, valid = s.searchNext(enemiesCopy, friendsCopy, -s.alpha-1, -s.alpha)
		if !valid {
			return
		}
		score = -result.Score

		if score > s.alpha && score < s.beta {
			result, valid = s.searchNext(enemiesCopy, friendsCopy, -s.beta, -s.alpha)
			if !valid {
				return
			}
			score = -result.Score
		}
	} else {
		result, valid = s.searchNext(enemiesCopy, friendsCopy, -s.beta, -s.alpha)
		if !valid {
			return
		}
		score = -result.Score
	}

	if score > s.best.Score {
		s.best.Move = move
		s.best.Score = score
		s.nextKillerMove = result.Move
	}

	if s.best.Score > s.alpha {
		s.alpha = s.best.Score
		s.nodeType = Pv
	}

	if s.alpha >= s.beta {
		s.nodeType = Cut
	}

	s.moveCount++
}

func (s *searcher) shouldStop() bool {
	return s.stopFlag != nil && s.depth >= s.killerPollDepth && s.stopFlag.Load()
}

func (s *searcher) mainSearch() {
	s.best = Recommendation{Move: Move{}, Score: -2 * BIG}
	s.nodeType = All

	entry, wasFound := s.table.Lookup(s.friends, s.enemies)
	var ttMove Move
	if wasFound {
		ttMove = entry.Move

		ttIsExactMatch := ttMove.IsEmpty() || (entry.Type == Pv && entry.Depth >= s.depth)
		if ttIsExactMatch {
			s.best = Recommendation{Move: entry.Move, Score: entry.Score}
			return
		}

		s.processMove(ttMove)
		if s.nodeType == Cut || s.stopped {
			return
		}
	}

	if s.enableKillerMoves && !s.killerMove.IsEmpty() && IsMoveLegalLowLevel(s.killerMove.From.BitBoard(), s.killerMove.To.BitBoard(), s.friends, s.enemies) {
		s.processMove(s.killerMove)
		if s.nodeType == Cut || s.stopped {
			return
		}
	}

	moves := GenerateMoves(s.friends, s.enemies)

	hasPlayerWon := AreAllTogether(s.friends)
	hasPlayerLost := AreAllTogether(s.enemies)
	if len(moves) == 0 || hasPlayerWon || hasPlayerLost {
		s.best.Move = Move{}
		noLegalMoves := len(moves) == 0
		s.best.Score = EvaluateLeafPosition(s.friends, s.enemies, hasPlayerWon, hasPlayerLost, noLegalMoves)
		return
	}

	for _, moveSet := range moves {
		if s.shouldStop() {
			s.stopped = true
			return
		}
		toRemaining := moveSet.To
		for toRemaining != 0 {
			toBit := extractOneBit(&toRemaining)
			move := Move{From: squareFromBitBoard(moveSet.From), To: squareFromBitBoard(toBit)}

			if s.enableKillerMoves && s.killerMove == move {
				continue
			}
			if ttMove == move {
				continue
			}

			s.processMove(move)
			if s.nodeType == Cut || s.stopped {
				return
			}
		}
	}
}

// addToTranspositionTable delegates to the table's own replacement policy:
// Store already implements the exact condition checked here, so there is no
// need to re-check it before mutating the slot.
func (s *searcher) addToTranspositionTable() {
	s.table.Store(s.friends, s.enemies, s.best.Move, s.best.Score, s.depth, s.nodeType)
}
