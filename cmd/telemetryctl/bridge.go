package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/ducky64/telemetry/hal/hostserial"
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Relay the raw serial byte stream over a WebSocket",
	Long: `bridge exposes the serial port's raw byte stream to WebSocket clients:
bytes read from the device are broadcast to every connected client, and
bytes sent by any client are written back to the device. This lets a
remote tool decode telemetry (or drive the pass-through channel) without
direct access to the serial port.`,
	RunE: runBridge,
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsHub tracks connected clients and fans serial bytes out to all of them,
// in the shape of Thermoquad-heliostat's ws_discovery/ws_ping router
// clients but inverted: this process is the router, not the client.
type wsHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{clients: map[*websocket.Conn]struct{}{}}
}

func (h *wsHub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *wsHub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.Close()
}

func (h *wsHub) broadcast(b []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if err := c.WriteMessage(websocket.BinaryMessage, b); err != nil {
			slog.Warn("websocket write failed, dropping client", "err", err)
			delete(h.clients, c)
			c.Close()
		}
	}
}

func runBridge(cmd *cobra.Command, args []string) error {
	if portName == "" {
		return fmt.Errorf("no serial port given (use --port or set it in ~/.telemetryctl.yaml)")
	}

	h, err := hostserial.Open(portName, baudRate)
	if err != nil {
		return fmt.Errorf("opening %s: %w", portName, err)
	}
	defer h.Close()

	hub := newWSHub()

	go func() {
		for {
			if h.RxAvailable() == 0 {
				continue
			}
			hub.broadcast([]byte{h.ReceiveByte()})
		}
	}()

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", "err", err)
			return
		}
		hub.add(conn)
		defer hub.remove(conn)

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			for _, b := range data {
				h.TransmitByte(b)
			}
		}
	})

	slog.Info("bridge listening", "addr", wsListenAddr, "port", portName, "baud", baudRate)
	return http.ListenAndServe(wsListenAddr, nil)
}
