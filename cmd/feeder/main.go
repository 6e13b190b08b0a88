// feeder connects to a running collector and sends synthetic pointer events,
// printing every acknowledgement it receives.
// Usage: go run ./cmd/feeder --url ws://localhost:8080/ws --count 100 --interval 50ms
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	url := flag.String("url", "ws://localhost:8080/ws", "event channel URL")
	count := flag.Int("count", 20, "number of events to send")
	interval := flag.Duration("interval", 100*time.Millisecond, "delay between events")
	dropEvery := flag.Int("drop-every", 0, "omit a required field from every n-th event (0 disables)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, *url, nil)
	if err != nil {
		logger.Error("failed to connect", "url", *url, "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	logger.Info("connected", "url", *url)

	acks := make(chan []byte, 16)
	go readAcks(conn, acks, logger)

	// The first frame is the connected ack.
	select {
	case ack, ok := <-acks:
		if !ok {
			logger.Error("connection closed before connected ack")
			os.Exit(1)
		}
		fmt.Printf("<- %s\n", ack)
	case <-time.After(10 * time.Second):
		logger.Error("no connected ack")
		os.Exit(1)
	case <-ctx.Done():
		return
	}

	gen := newWalk(*dropEvery)
	stats := struct{ sent, success, failed int }{}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for stats.sent < *count {
		select {
		case <-ctx.Done():
			logger.Info("interrupted", "sent", stats.sent)
			return
		case <-ticker.C:
		}

		payload := gen.next()
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Error("send failed", "error", err)
			os.Exit(1)
		}
		stats.sent++
		fmt.Printf("-> %s\n", payload)

		select {
		case ack, ok := <-acks:
			if !ok {
				logger.Error("connection closed", "sent", stats.sent)
				os.Exit(1)
			}
			fmt.Printf("<- %s\n", ack)
			if isSuccess(ack) {
				stats.success++
			} else {
				stats.failed++
			}
		case <-time.After(10 * time.Second):
			logger.Warn("ack timeout", "seq", stats.sent)
			stats.failed++
		case <-ctx.Done():
			return
		}
	}

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

	logger.Info("done",
		"sent", stats.sent,
		"success", stats.success,
		"failed", stats.failed,
	)
}

func readAcks(conn *websocket.Conn, out chan<- []byte, logger *slog.Logger) {
	defer close(out)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				logger.Debug("read ended", "error", err)
			}
			return
		}
		out <- data
	}
}
