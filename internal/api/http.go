package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"lift-simulator/internal/aero"
	"lift-simulator/internal/sim"
)

const (
	socketBufferSize = 1024
	writeWait        = 2 * time.Second
)

var upgrader = &websocket.Upgrader{ReadBufferSize: socketBufferSize, WriteBufferSize: socketBufferSize}

type Server struct {
	eng *sim.Engine
	mux *http.ServeMux
	log *logrus.Entry
}

func NewServer(eng *sim.Engine, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Server{eng: eng, mux: http.NewServeMux(), log: logger.WithField("component", "api")}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("/health", s.health)
	s.mux.HandleFunc("/state", s.state)
	s.mux.HandleFunc("/inputs", s.inputs)

	s.mux.HandleFunc("/command/freeze", s.freezeCmd)
	s.mux.HandleFunc("/command/resume", s.resumeCmd)
	s.mux.HandleFunc("/command/reset", s.resetCmd)

	s.mux.HandleFunc("/stream", s.streamSSE)
	s.mux.HandleFunc("/ws", s.streamWS)

	s.mux.HandleFunc("/debug/frame", s.debugFrame)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) current(r *http.Request) (sim.Frame, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	return s.eng.GetState(ctx)
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	st, err := s.current(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	writeJSON(w, st)
}

// inputs replaces the base snapshot. When the server runs a terrain effect,
// hGear is derived from flight.altitudeFt on every frame; a body that leaves
// altitudeFt at zero keeps the hGear it sends.
func (s *Server) inputs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var body aero.Snapshot
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if k := body.Flight.IceFactor; k < 0 || k > 1 {
		http.Error(w, "iceFactor must be within [0, 1]", http.StatusBadRequest)
		return
	}

	s.eng.Submit(sim.SetInputsCommand{At: time.Now(), Inputs: body})
	writeJSON(w, map[string]any{"status": "accepted", "type": sim.CmdSetInputs})
}

func (s *Server) command(cmd sim.Command) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		s.eng.Submit(cmd)
		writeJSON(w, map[string]any{"status": "accepted", "type": cmd.Type()})
	}
}

func (s *Server) freezeCmd(w http.ResponseWriter, r *http.Request) {
	s.command(sim.FreezeCommand{At: time.Now()})(w, r)
}

func (s *Server) resumeCmd(w http.ResponseWriter, r *http.Request) {
	s.command(sim.ResumeCommand{At: time.Now()})(w, r)
}

func (s *Server) resetCmd(w http.ResponseWriter, r *http.Request) {
	s.command(sim.ResetCommand{At: time.Now()})(w, r)
}

func (s *Server) streamSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ctx := r.Context()
	ch, unsub := s.eng.Subscribe(ctx)
	defer unsub()

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-ch:
			if !ok {
				return
			}
			if err := writeSSE(w, st); err != nil {
				s.log.WithError(err).WithField("seq", st.Seq).Warn("frame not streamed")
				continue
			}
			flusher.Flush()
		}
	}
}

// writeSSE writes one frame event. Nothing is written if the frame does not
// encode, e.g. when an output is NaN.
func writeSSE(w io.Writer, st sim.Frame) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: frame\ndata: %s\n\n", b)
	return err
}

func (s *Server) streamWS(w http.ResponseWriter, r *http.Request) {
	socket, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer socket.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ch, unsub := s.eng.Subscribe(ctx)
	defer unsub()

	s.log.WithField("remote", r.RemoteAddr).Info("websocket client joined")
	defer s.log.WithField("remote", r.RemoteAddr).Info("websocket client left")

	// The client sends nothing; reading only detects the close.
	go func() {
		defer cancel()
		for {
			if _, _, err := socket.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-ch:
			if !ok {
				return
			}
			_ = socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := socket.WriteJSON(st); err != nil {
				return
			}
		}
	}
}

func (s *Server) debugFrame(w http.ResponseWriter, r *http.Request) {
	st, err := s.current(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(spew.Sdump(st)))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
