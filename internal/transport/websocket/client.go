package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const writeWait = 10 * time.Second

var activeConnections = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "connect4_ws_connections",
	Help: "Open decision websocket connections",
})

// ConnectionManager tracks open connections thread-safely
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// writeMu ensures only one goroutine writes to a specific socket at a
	// time; the keep-alive pinger and the reply loop share each socket.
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex // Protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

func (cm *ConnectionManager) AddConnection(id string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.connections[id] = conn
	cm.writeMu[id] = &sync.Mutex{}
	activeConnections.Inc()
}

func (cm *ConnectionManager) RemoveConnection(id string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn, exists := cm.connections[id]; exists {
		conn.Close()
		delete(cm.connections, id)
		delete(cm.writeMu, id)
		activeConnections.Dec()
	}
}

func (cm *ConnectionManager) lookup(id string) (*websocket.Conn, *sync.Mutex, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	conn, ok := cm.connections[id]
	mu, muOk := cm.writeMu[id]
	return conn, mu, ok && muOk
}

// SendJSON writes one JSON message to a connection. A connection that is
// already gone is not an error.
func (cm *ConnectionManager) SendJSON(id string, v any) error {
	conn, mu, ok := cm.lookup(id)
	if !ok {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

func (cm *ConnectionManager) Ping(id string) error {
	conn, mu, ok := cm.lookup(id)
	if !ok {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}

// CloseAll sends a going-away close frame to every connection and drops
// them. Used on shutdown.
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for id, conn := range cm.connections {
		cm.writeMu[id].Lock()
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		cm.writeMu[id].Unlock()
		conn.Close()
		delete(cm.connections, id)
		delete(cm.writeMu, id)
		activeConnections.Dec()
	}
}
