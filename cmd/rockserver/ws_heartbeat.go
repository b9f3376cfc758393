package main

import (
	"time"

	"github.com/fjswaugh/rock"
	"github.com/gorilla/websocket"
)

const (
	wsIdlePingInterval      = 30 * time.Second
	wsAnalyzingPingInterval = 10 * time.Second
)

// writeWSWithHeartbeat drains send to conn and pings on idle so a reverse
// proxy's read timeout never fires on a quiet connection. A client
// subscribed to a session (analyzer non-nil) gets the shorter
// wsAnalyzingPingInterval while that session's analyzer is actually
// thinking: a deep analysis can go tens of seconds between progress reports
// (ReportIntervalDepths throttles those), and that gap must not look like a
// dead socket.
func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte, analyzer *rock.GameAnalyzer) error {
	ticker := time.NewTicker(wsAnalyzingPingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			interval := wsIdlePingInterval
			if analyzer != nil && analyzer.IsAnalysisOngoing() {
				interval = wsAnalyzingPingInterval
			}
			if time.Since(lastWrite) < interval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
