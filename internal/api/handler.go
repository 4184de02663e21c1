package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/eugenenazirov/fuel-calculator/internal/fuel"
	"github.com/eugenenazirov/fuel-calculator/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// maxBodyBytes comfortably fits storage.MaxModules masses encoded as JSON.
const maxBodyBytes = 64 << 10

// Handler wires calculator and storage dependencies into HTTP handlers.
type Handler struct {
	calculator fuel.Calculator
	storage    storage.Storage

	clock func() time.Time

	mu               sync.RWMutex
	modulesUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(calc fuel.Calculator, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		calculator: calc,
		storage:    store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.modulesUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetModules(w http.ResponseWriter, _ *http.Request) {
	masses, err := h.storage.GetMasses()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := modulesResponse{
		Masses:    masses,
		UpdatedAt: h.currentModulesUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutModules(w http.ResponseWriter, r *http.Request) {
	var req modulesRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if req.Masses == nil {
		writeError(w, http.StatusBadRequest, "Invalid module masses", "masses must be provided")
		return
	}

	if err := h.storage.SetMasses(req.Masses); err != nil {
		if errors.Is(err, storage.ErrInvalidMasses) {
			writeError(w, http.StatusBadRequest, "Invalid module masses", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markModulesUpdated()

	masses, err := h.storage.GetMasses()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := modulesResponse{
		Masses:    masses,
		UpdatedAt: h.currentModulesUpdatedAt(),
		Message:   "Module manifest updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleFuel(w http.ResponseWriter, r *http.Request) {
	var req fuelRequest
	if err := decodeBody(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeDecodeError(w, err)
		return
	}

	if len(req.Masses) > storage.MaxModules {
		writeError(w, http.StatusBadRequest, "Invalid module masses",
			fmt.Sprintf("at most %d masses can be calculated per request", storage.MaxModules))
		return
	}

	masses := req.Masses
	if len(masses) == 0 {
		stored, err := h.storage.GetMasses()
		if err != nil {
			writeInternalError(w, err)
			return
		}
		if len(stored) == 0 {
			writeError(w, http.StatusUnprocessableEntity, "No modules", "module manifest is empty",
				"Provide masses in the request or store a manifest via PUT /api/modules")
			return
		}
		masses = stored
	}

	start := time.Now()
	report, calcErr := h.calculator.Breakdown(masses)
	elapsed := time.Since(start)

	if calcErr != nil {
		switch {
		case errors.Is(calcErr, fuel.ErrNegativeMass):
			writeError(w, http.StatusBadRequest, "Invalid module masses", calcErr.Error())
		default:
			writeInternalError(w, calcErr)
		}
		return
	}

	modules := make([]moduleFuel, 0, len(report.Modules))
	for _, m := range report.Modules {
		modules = append(modules, moduleFuel{
			Mass:      m.Mass,
			BaseFuel:  m.Base,
			TotalFuel: m.Total,
		})
	}

	resp := fuelResponse{
		Modules:           modules,
		TotalFuel:         report.Total,
		CalculationTimeMs: elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) currentModulesUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.modulesUpdatedAt
}

func (h *Handler) markModulesUpdated() {
	h.mu.Lock()
	h.modulesUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type modulesRequest struct {
	Masses []int `json:"masses"`
}

type fuelRequest struct {
	Masses []int `json:"masses"`
}

type moduleFuel struct {
	Mass      int `json:"mass"`
	BaseFuel  int `json:"baseFuel"`
	TotalFuel int `json:"totalFuel"`
}

type fuelResponse struct {
	Modules           []moduleFuel `json:"modules"`
	TotalFuel         int          `json:"totalFuel"`
	CalculationTimeMs int64        `json:"calculationTimeMs"`
}

type modulesResponse struct {
	Masses    []int     `json:"masses"`
	UpdatedAt time.Time `json:"updatedAt"`
	Message   string    `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Request too large",
			fmt.Sprintf("request body must not exceed %d bytes", tooLarge.Limit))
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
