// Package vizserver streams the running simulation to browsers: frames go
// out over websockets every tick, and small HTTP endpoints swap scenarios and
// toggle the debug overlay.
package vizserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/borkshop/markerfield/internal/frame"
	"github.com/borkshop/markerfield/internal/grid"
)

// Server serves a Driver's frames over HTTP.
type Server struct {
	driver    *Driver
	logger    *log.Logger
	accessLog io.Writer
	upgrader  websocket.Upgrader
}

// NewServer creates a server for the driver; requests are access-logged to
// accessLog.
func NewServer(driver *Driver, logger *log.Logger, accessLog io.Writer) *Server {
	return &Server{
		driver:    driver,
		logger:    logger,
		accessLog: accessLog,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	logged := func(h http.HandlerFunc) http.Handler {
		return handlers.CombinedLoggingHandler(s.accessLog, h)
	}
	router := mux.NewRouter()
	router.Handle("/", logged(s.home)).Methods("GET")
	router.Handle("/ws", logged(s.websocket)).Methods("GET")
	router.Handle("/frame", logged(s.frame)).Methods("GET")
	router.Handle("/frame.geojson", logged(s.geojson)).Methods("GET")
	router.Handle("/scenario/{name:[a-zA-Z0-9\\-]+}", logged(s.swap)).Methods("POST")
	router.Handle("/debug", logged(s.debug)).Methods("POST")
	return router
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	s.logger.Printf("viz listening on %s", addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, homePage)
}

func (s *Server) frame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.driver.Frame())
}

func (s *Server) geojson(w http.ResponseWriter, r *http.Request) {
	data, err := frame.GeoJSON(s.driver.Frame()).MarshalJSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(data)
}

func (s *Server) swap(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	err := s.driver.Swap(r.Context(), name)
	switch {
	case errors.Cause(err) == ErrNoScenario:
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) debug(w http.ResponseWriter, r *http.Request) {
	if on := r.URL.Query().Get("on"); on == "" {
		grid.ToggleDebug()
	} else if b, err := strconv.ParseBool(on); err != nil {
		http.Error(w, "invalid on parameter", http.StatusBadRequest)
		return
	} else {
		grid.SetDebug(b)
	}
	s.logger.Printf("debug=%v", grid.Debug())
	writeJSON(w, http.StatusOK, map[string]bool{"debug": grid.Debug()})
}

func (s *Server) websocket(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("upgrade: %v", err)
		return
	}

	watcher := NewWatcher(c)
	s.driver.watchers.Set(watcher)
	defer func() {
		s.driver.watchers.Remove(watcher.ID())
		_ = c.Close()
		s.logger.Printf("watcher %v left, %d watching", watcher.ID(), s.driver.watchers.Size())
	}()
	s.logger.Printf("watcher %v joined, %d watching", watcher.ID(), s.driver.watchers.Size())

	if err := c.WriteJSON(Message{Type: "init", Data: s.driver.initData()}); err != nil {
		return
	}
	if err := c.WriteJSON(Message{Type: "frame", Data: s.driver.Frame()}); err != nil {
		return
	}

	// reading is mandatory to notice the client closing the socket
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case msg := <-watcher.send:
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
