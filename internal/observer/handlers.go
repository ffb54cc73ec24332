package observer

import (
	"github.com/rs/zerolog/log"

	"statusbus/internal/sync"
)

// LogHandler logs every status change it observes (useful for
// debugging and as the simplest concrete listener variant).
type LogHandler struct {
	// Name identifies this handler in log output.
	Name string
}

// HandleChange logs the listener's new status.
func (h *LogHandler) HandleChange(l *Listener) {
	log.Info().
		Str("handler", h.Name).
		Str("event", string(l.Event())).
		Str("status", l.Status()).
		Msg("status changed")
}

// PanelHandler mimics a status display panel: it repaints itself with
// the most recent status and counts how many repaints occurred. It is
// the stand-in for UI glue that recolors a view on change.
type PanelHandler struct {
	name string

	mu       sync.Mutex
	current  string
	repaints int
}

// NewPanelHandler creates a panel with the given display name.
func NewPanelHandler(name string) *PanelHandler {
	return &PanelHandler{name: name}
}

// HandleChange repaints the panel with the listener's current status.
func (h *PanelHandler) HandleChange(l *Listener) {
	h.mu.Lock()
	h.current = l.Status()
	h.repaints++
	repaints := h.repaints
	h.mu.Unlock()

	log.Info().
		Str("panel", h.name).
		Str("status", l.Status()).
		Int("repaints", repaints).
		Msg("panel repainted")
}

// Current returns the status the panel last rendered.
func (h *PanelHandler) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Repaints returns how many times the panel has been repainted.
func (h *PanelHandler) Repaints() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.repaints
}
