package vizserver

import (
	"sync"

	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"
)

// watcherBacklog is how many frames may queue for a slow watcher before
// frames are dropped for it.
const watcherBacklog = 8

// Watcher is one websocket client receiving the frame stream.
type Watcher struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// NewWatcher wraps a websocket connection.
func NewWatcher(conn *websocket.Conn) *Watcher {
	return &Watcher{
		id:   uuid.NewV4(),
		conn: conn,
		send: make(chan []byte, watcherBacklog),
	}
}

// ID returns the watcher's id.
func (w *Watcher) ID() uuid.UUID { return w.id }

// WatcherMap is the set of connected watchers, safe for concurrent use.
type WatcherMap struct {
	mu sync.RWMutex
	m  map[uuid.UUID]*Watcher
}

// NewWatcherMap creates an empty WatcherMap.
func NewWatcherMap() *WatcherMap {
	return &WatcherMap{m: make(map[uuid.UUID]*Watcher)}
}

// Set adds a watcher.
func (wm *WatcherMap) Set(w *Watcher) {
	wm.mu.Lock()
	wm.m[w.id] = w
	wm.mu.Unlock()
}

// Remove drops a watcher.
func (wm *WatcherMap) Remove(id uuid.UUID) {
	wm.mu.Lock()
	delete(wm.m, id)
	wm.mu.Unlock()
}

// Size returns how many watchers are connected.
func (wm *WatcherMap) Size() int {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return len(wm.m)
}

// Broadcast queues msg for every watcher without blocking, returning how many
// watchers were too far behind to take it.
func (wm *WatcherMap) Broadcast(msg []byte) (dropped int) {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	for _, w := range wm.m {
		select {
		case w.send <- msg:
		default:
			dropped++
		}
	}
	return dropped
}
