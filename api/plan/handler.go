package plan

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kilianp07/studyplan/core/logger"
	"github.com/kilianp07/studyplan/core/model"
)

// PlanIDHeader carries the generated plan ID on responses.
const PlanIDHeader = "X-Plan-ID"

// maxBodyBytes bounds the size of an inbound request.
const maxBodyBytes = 1 << 20

type handler struct {
	gen Generator
	log logger.Logger
}

// planRequest is the inbound payload. use_ai is accepted as an alias of
// use_remote for older clients.
type planRequest struct {
	TotalHours float64         `json:"total_hours"`
	StartTime  string          `json:"start_time"`
	Subjects   []model.Subject `json:"subjects"`
	Focus      string          `json:"focus"`
	UseRemote  *bool           `json:"use_remote"`
	UseAI      *bool           `json:"use_ai"`
}

func (p planRequest) toModel() model.PlanRequest {
	useRemote := false
	switch {
	case p.UseRemote != nil:
		useRemote = *p.UseRemote
	case p.UseAI != nil:
		useRemote = *p.UseAI
	}
	return model.PlanRequest{
		TotalHours: p.TotalHours,
		StartTime:  p.StartTime,
		Subjects:   p.Subjects,
		Focus:      p.Focus,
		UseRemote:  useRemote,
	}
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) createPlan(w http.ResponseWriter, r *http.Request) {
	var body planRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		h.fail(w, fmt.Errorf("decode request: %w", err))
		return
	}
	req := body.toModel()
	if err := req.Validate(); err != nil {
		h.fail(w, fmt.Errorf("invalid request: %w", err))
		return
	}

	res := h.gen.Generate(r.Context(), req)
	if res.Blocks == nil {
		res.Blocks = []model.ScheduleBlock{}
	}
	if res.ID != "" {
		w.Header().Set(PlanIDHeader, res.ID)
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) fail(w http.ResponseWriter, err error) {
	h.log.Errorf("plan request failed: %v", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
