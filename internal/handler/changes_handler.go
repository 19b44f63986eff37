package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
)

const sseHeartbeat = 25 * time.Second

// Changes streams change events as server-sent events until the client
// disconnects. Each event is written as "event: change" with a JSON body.
func (h *HTTPHandler) Changes(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	if _, err := actor(r); err != nil {
		writeError(w, h.log, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, h.log, errors.New(errors.ErrCodeInternal, "streaming unsupported"))
		return
	}

	filter := repository.ChangeFilter{
		Table: r.URL.Query().Get("table"),
		RowID: r.URL.Query().Get("id"),
	}
	events, err := h.changes.Subscribe(r.Context(), filter)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				h.log.Warn().Err(err).Msg("Failed to encode change event")
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
