package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/mediapotion/timeline-builder/internal/domain"
	"github.com/mediapotion/timeline-builder/internal/service"
	"github.com/mediapotion/timeline-builder/internal/timecode"
)

// clockJSON is the wire form of a 12-hour clock value.
type clockJSON struct {
	Hour   string `json:"hour"`
	Minute string `json:"minute"`
	Period string `json:"period"`
}

// rowResponse is one timeline row as the frontend consumes it: the
// stored minute count plus the encoded clock triple, so the client never
// reimplements the time codec.
type rowResponse struct {
	ID              string    `json:"id"`
	Location        string    `json:"location"`
	Start           clockJSON `json:"start"`
	StartMinute     int       `json:"start_minute"`
	Event           string    `json:"event"`
	DurationMinutes int       `json:"duration_minutes"`
	PhotoCoverage   bool      `json:"photo_coverage"`
	VideoCoverage   bool      `json:"video_coverage"`
	Outdoor         bool      `json:"outdoor"`
	Notes           string    `json:"notes"`
}

// sessionResponse is the full session view returned by every mutating
// endpoint, with rows in display order.
type sessionResponse struct {
	ID      string         `json:"id"`
	Rows    []rowResponse  `json:"rows"`
	Meta    domain.Project `json:"meta"`
	CanUndo bool           `json:"can_undo"`
	CanRedo bool           `json:"can_redo"`
}

func stateToResponse(st service.State) sessionResponse {
	rows := make([]rowResponse, len(st.Rows))
	for i, r := range st.Rows {
		c := timecode.Encode(r.StartMinute)
		rows[i] = rowResponse{
			ID:              r.ID.String(),
			Location:        r.Location,
			Start:           clockJSON{Hour: c.Hour, Minute: c.Minute, Period: c.Period},
			StartMinute:     r.StartMinute,
			Event:           r.Event,
			DurationMinutes: r.DurationMinutes,
			PhotoCoverage:   r.PhotoCoverage,
			VideoCoverage:   r.VideoCoverage,
			Outdoor:         r.Outdoor,
			Notes:           r.Notes,
		}
	}
	return sessionResponse{
		ID:      st.ID.String(),
		Rows:    rows,
		Meta:    st.Meta,
		CanUndo: st.CanUndo,
		CanRedo: st.CanRedo,
	}
}

// createSession handles POST /sessions.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	st := s.sessions.Create(r.Context())
	s.writeJSON(w, http.StatusCreated, stateToResponse(st))
}

// getSession handles GET /sessions/{sessionID}.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, func(id uuid.UUID) (service.State, error) {
		return s.sessions.Get(r.Context(), id)
	})
}

// updateMetadata handles PUT /sessions/{sessionID}/metadata.
func (s *Server) updateMetadata(w http.ResponseWriter, r *http.Request) {
	var meta domain.Project
	if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
		s.respondBadRequest(w, "request body must be a metadata object")
		return
	}
	s.respond(w, r, func(id uuid.UUID) (service.State, error) {
		return s.sessions.UpdateMetadata(r.Context(), id, meta)
	})
}

// rowPatchRequest carries a partial row edit; absent fields stay as they
// are. duration is a string and start a raw clock triple because both
// arrive exactly as typed and are repaired, not validated.
type rowPatchRequest struct {
	Location      *string    `json:"location"`
	Event         *string    `json:"event"`
	Notes         *string    `json:"notes"`
	Duration      *string    `json:"duration"`
	Start         *clockJSON `json:"start"`
	PhotoCoverage *bool      `json:"photo_coverage"`
	VideoCoverage *bool      `json:"video_coverage"`
	Outdoor       *bool      `json:"outdoor"`
}

// patchRow handles PATCH /sessions/{sessionID}/rows/{rowID}.
func (s *Server) patchRow(w http.ResponseWriter, r *http.Request) {
	var req rowPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondBadRequest(w, "request body must be a row patch object")
		return
	}
	patch := service.RowPatch{
		Location:      req.Location,
		Event:         req.Event,
		Notes:         req.Notes,
		Duration:      req.Duration,
		PhotoCoverage: req.PhotoCoverage,
		VideoCoverage: req.VideoCoverage,
		Outdoor:       req.Outdoor,
	}
	if req.Start != nil {
		patch.Time = &timecode.Clock{
			Hour:   req.Start.Hour,
			Minute: req.Start.Minute,
			Period: req.Start.Period,
		}
	}
	s.respondRow(w, r, func(id, row uuid.UUID) (service.State, error) {
		return s.sessions.UpdateRow(r.Context(), id, row, patch)
	})
}

// addRow handles POST /sessions/{sessionID}/rows.
func (s *Server) addRow(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, func(id uuid.UUID) (service.State, error) {
		return s.sessions.AddRow(r.Context(), id)
	})
}

// deleteRow handles DELETE /sessions/{sessionID}/rows/{rowID}. The
// response is the recalculated session, not a 204: deleting a row shifts
// every later row and the client needs the new times.
func (s *Server) deleteRow(w http.ResponseWriter, r *http.Request) {
	s.respondRow(w, r, func(id, row uuid.UUID) (service.State, error) {
		return s.sessions.DeleteRow(r.Context(), id, row)
	})
}

// moveRow handles POST /sessions/{sessionID}/rows/{rowID}/move.
func (s *Server) moveRow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondBadRequest(w, "request body must carry a direction")
		return
	}
	s.respondRow(w, r, func(id, row uuid.UUID) (service.State, error) {
		return s.sessions.MoveRow(r.Context(), id, row, req.Direction)
	})
}

// chainRow handles POST /sessions/{sessionID}/rows/{rowID}/chain.
func (s *Server) chainRow(w http.ResponseWriter, r *http.Request) {
	s.respondRow(w, r, func(id, row uuid.UUID) (service.State, error) {
		return s.sessions.ChainRow(r.Context(), id, row)
	})
}

// dropRequest is the tagged drag-and-drop payload.
type dropRequest struct {
	Kind            string `json:"kind"`
	RowID           string `json:"row_id"`
	TargetIndex     int    `json:"target_index"`
	TargetRowID     string `json:"target_row_id"`
	Label           string `json:"label"`
	DurationMinutes int    `json:"duration_minutes"`
}

// drop handles POST /sessions/{sessionID}/drop. A drop gesture must
// never fail or mutate on bad input, so a malformed body or unparseable
// row id degrades to a no-op payload and the current state comes back
// with HTTP 200. Only an unknown session is an error.
func (s *Server) drop(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req = dropRequest{}
	}

	// uuid.Nil never matches a row, so parse failures become no-ops.
	rowID, _ := uuid.Parse(req.RowID)
	targetRowID, _ := uuid.Parse(req.TargetRowID)

	s.respond(w, r, func(id uuid.UUID) (service.State, error) {
		return s.sessions.Drop(r.Context(), id, service.DropPayload{
			Kind:            req.Kind,
			RowID:           rowID,
			TargetIndex:     req.TargetIndex,
			TargetRowID:     targetRowID,
			Label:           req.Label,
			DurationMinutes: req.DurationMinutes,
		})
	})
}

// undo handles POST /sessions/{sessionID}/undo.
func (s *Server) undo(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, func(id uuid.UUID) (service.State, error) {
		return s.sessions.Undo(r.Context(), id)
	})
}

// redo handles POST /sessions/{sessionID}/redo.
func (s *Server) redo(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, func(id uuid.UUID) (service.State, error) {
		return s.sessions.Redo(r.Context(), id)
	})
}

// respond runs a session-addressed operation and writes the resulting
// state or the mapped error.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, op func(uuid.UUID) (service.State, error)) {
	id, err := sessionID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	st, err := op(id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stateToResponse(st))
}

// respondRow is respond for operations addressing a row within a session.
func (s *Server) respondRow(w http.ResponseWriter, r *http.Request, op func(id, row uuid.UUID) (service.State, error)) {
	id, err := sessionID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	row, err := rowID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	st, err := op(id, row)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stateToResponse(st))
}
