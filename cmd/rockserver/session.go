package main

import (
	"sync"

	"github.com/fjswaugh/rock"
)

// Session is one game in progress, owned by the HTTP front end. It is not
// part of the scored core: the core never knows a session exists.
type Session struct {
	mu       sync.Mutex
	Position rock.Position
	Settings rock.GameSettings
	History  rock.MoveHistory
	Analyzer *rock.GameAnalyzer
}

func NewSession(settings rock.GameSettings) *Session {
	pos := rock.Position{
		Board:        rock.StartingBoard,
		PlayerToMove: settings.StartingPlayer,
	}
	return &Session{
		Position: pos,
		Settings: settings,
		Analyzer: rock.NewGameAnalyzer(),
	}
}

func (s *Session) ApplyMove(m rock.Move, elapsedMs float64, depth int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !rock.IsMoveLegal(m, s.Position) {
		return errIllegalMove
	}
	player := s.Position.PlayerToMove
	s.Position = rock.ApplyMoveToPosition(m, s.Position)
	s.History.Push(rock.RecordedMove{Move: m, Player: player, ElapsedMs: elapsedMs, Depth: depth})
	return nil
}

func (s *Session) Snapshot() (rock.Position, rock.GameOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Position, rock.GetGameOutcome(s.Position)
}

// SessionManager tracks sessions by id behind a single process-wide
// registry guarded by a mutex, keyed by id rather than a singleton since
// this module can host many concurrent games.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	nextID   int
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

func (m *SessionManager) Create(settings rock.GameSettings) (string, *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := sessionIDFor(m.nextID)
	session := NewSession(settings)
	m.sessions[id] = session
	return id, session
}

func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

func sessionIDFor(n int) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	if n == 0 {
		return "0"
	}
	buf := make([]byte, 0, 8)
	for n > 0 {
		buf = append(buf, alphabet[n%len(alphabet)])
		n /= len(alphabet)
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}
