package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/fjswaugh/rock"
)

const ttSnapshotPath = "rock-tt.snapshot"

type positionDTO struct {
	Board        string `json:"board"`
	PlayerToMove string `json:"player_to_move"`
}

func positionToDTO(p rock.Position) positionDTO {
	return positionDTO{
		Board:        rock.FormatPositionFEN(p),
		PlayerToMove: p.PlayerToMove.String(),
	}
}

type statusResponse struct {
	SessionID string              `json:"session_id"`
	Position  positionDTO         `json:"position"`
	Outcome   string              `json:"outcome"`
	History   []rock.RecordedMove `json:"history"`
}

func sessionStatus(id string, s *Session) statusResponse {
	pos, outcome := s.Snapshot()
	s.mu.Lock()
	history := s.History.All()
	s.mu.Unlock()
	return statusResponse{
		SessionID: id,
		Position:  positionToDTO(pos),
		Outcome:   outcomeString(outcome),
		History:   history,
	}
}

func outcomeString(o rock.GameOutcome) string {
	switch o {
	case rock.WhiteWins:
		return "white_wins"
	case rock.BlackWins:
		return "black_wins"
	case rock.Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

type analysisResponse struct {
	BestMove           string   `json:"best_move"`
	PrincipalVariation []string `json:"principal_variation"`
	Score              int64    `json:"score"`
}

func analysisToDTO(a rock.PositionAnalysis) analysisResponse {
	pv := make([]string, 0, len(a.PrincipalVariation))
	for _, m := range a.PrincipalVariation {
		pv = append(pv, rock.FormatMove(m))
	}
	best := ""
	if !a.BestMove.IsEmpty() {
		best = rock.FormatMove(a.BestMove)
	}
	return analysisResponse{BestMove: best, PrincipalVariation: pv, Score: int64(a.Score)}
}

type progressPayload struct {
	SessionID string           `json:"session_id"`
	Depth     int              `json:"depth"`
	Analysis  analysisResponse `json:"analysis"`
}

type ttCacheStatusResponse struct {
	Count    int     `json:"count"`
	Capacity int     `json:"capacity"`
	Usage    float64 `json:"usage"`
}

func ttCacheStatus(table *rock.TranspositionTable) ttCacheStatusResponse {
	count := table.Count()
	capacity := table.Capacity()
	usage := 0.0
	if capacity > 0 {
		usage = float64(count) / float64(capacity)
	}
	return ttCacheStatusResponse{Count: count, Capacity: capacity, Usage: usage}
}

func main() {
	sharedTT := loadOrCreateSharedTT(rock.GetConfig())
	sessions := NewSessionManager()
	hub := NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx.Done())

	persistOnce := func() {
		if err := rock.SaveTTSnapshot(sharedTT, ttSnapshotPath); err != nil {
			log.Printf("[rockserver] failed to persist transposition table: %v", err)
		}
	}
	defer persistOnce()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Post("/api/session", func(w http.ResponseWriter, r *http.Request) {
		settings := rock.DefaultGameSettings()
		id, session := sessions.Create(settings)
		writeJSON(w, http.StatusOK, sessionStatus(id, session))
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("session_id")
		session, ok := sessions.Get(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": errSessionNotFound.Error()})
			return
		}
		writeJSON(w, http.StatusOK, sessionStatus(id, session))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			SessionID string  `json:"session_id"`
			Move      string  `json:"move"`
			ElapsedMs float64 `json:"elapsed_ms"`
			Depth     int     `json:"depth"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		session, ok := sessions.Get(payload.SessionID)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": errSessionNotFound.Error()})
			return
		}
		move, err := rock.ParseMove(payload.Move)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if err := session.ApplyMove(move, payload.ElapsedMs, payload.Depth); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		status := sessionStatus(payload.SessionID, session)
		hub.broadcastStatus <- status
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/analyze", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			SessionID string `json:"session_id"`
			Depth     int    `json:"depth"`
			Level     *int   `json:"level"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		session, ok := sessions.Get(payload.SessionID)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": errSessionNotFound.Error()})
			return
		}
		pos, _ := session.Snapshot()

		var analysis rock.PositionAnalysis
		switch {
		case payload.Depth > 0:
			analysis = rock.AnalyzePosition(pos, payload.Depth)
		case payload.Level != nil:
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			analysis = rock.AnalyzePositionWithAIDifficultyLevel(pos, *payload.Level, rng)
		default:
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			analysis = rock.AnalyzePositionWithAIDifficultyLevel(pos, rock.GetConfig().AiLevel, rng)
		}
		writeJSON(w, http.StatusOK, analysisToDTO(analysis))
	})

	r.Post("/api/analyze/async", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			SessionID string `json:"session_id"`
			MaxDepth  int    `json:"max_depth"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		session, ok := sessions.Get(payload.SessionID)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": errSessionNotFound.Error()})
			return
		}
		if payload.MaxDepth > 0 {
			session.Analyzer.SetMaxDepth(payload.MaxDepth)
		}
		session.Analyzer.SetReportCallback(func(g *rock.GameAnalyzer) {
			hub.broadcastProgress <- progressPayload{
				SessionID: payload.SessionID,
				Depth:     g.CurrentDepth(),
				Analysis:  analysisToDTO(g.BestAnalysisSoFar()),
			}
		})
		pos, _ := session.Snapshot()
		go session.Analyzer.AnalyzePosition(pos)
		writeJSON(w, http.StatusAccepted, map[string]bool{"started": true})
	})

	r.Delete("/api/analyze/async", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("session_id")
		session, ok := sessions.Get(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": errSessionNotFound.Error()})
			return
		}
		session.Analyzer.StopAnalysis()
		writeJSON(w, http.StatusOK, map[string]bool{"stopping": true})
	})

	r.Get("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ttCacheStatus(sharedTT))
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, sessions, w, r)
	})

	server := &http.Server{Addr: ":8080", Handler: r}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Println("rockserver listening on :8080")
	select {
	case <-sigCtx.Done():
		log.Printf("[rockserver] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			log.Printf("[rockserver] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[rockserver] graceful shutdown failed: %v", err)
	}
	cancel()
}

func serveWS(hub *Hub, sessions *SessionManager, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	var analyzer *rock.GameAnalyzer
	if id := r.URL.Query().Get("session_id"); id != "" {
		if session, ok := sessions.Get(id); ok {
			analyzer = session.Analyzer
		}
	}

	go func() {
		defer conn.Close()
		_ = writeWSWithHeartbeat(conn, client.send, analyzer)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(client)
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func loadOrCreateSharedTT(cfg rock.Config) *rock.TranspositionTable {
	if table, err := rock.LoadTTSnapshot(ttSnapshotPath); err == nil {
		return table
	}
	return rock.NewTranspositionTable(cfg.TTSizeLog2)
}
