package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/lateness"
	"github.com/cmlabs-hris/attendance-policy-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LatenessHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	GetMyApplications(w http.ResponseWriter, r *http.Request)
	MonthlyReport(w http.ResponseWriter, r *http.Request)
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type latenessHandlerImpl struct {
	latenessService lateness.LatenessService
}

func NewLatenessHandler(latenessService lateness.LatenessService) LatenessHandler {
	return &latenessHandlerImpl{
		latenessService: latenessService,
	}
}

// Apply implements LatenessHandler.
func (h *latenessHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req lateness.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.latenessService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Late application submitted", result)
}

// Approve implements LatenessHandler.
func (h *latenessHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	req := lateness.ApproveRequest{ID: id}
	// Notes are optional; an empty body is fine.
	_ = json.NewDecoder(r.Body).Decode(&req)
	req.ID = id

	result, err := h.latenessService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Late application approved", result)
}

// Reject implements LatenessHandler.
func (h *latenessHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	var req lateness.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.latenessService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Late application rejected", result)
}

// GetMyApplications implements LatenessHandler.
func (h *latenessHandlerImpl) GetMyApplications(w http.ResponseWriter, r *http.Request) {
	result, err := h.latenessService.GetMyApplications(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthlyReport implements LatenessHandler.
func (h *latenessHandlerImpl) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")

	now := time.Now()
	year := now.Year()
	month := now.Month()

	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			response.BadRequest(w, "month must be between 1 and 12", nil)
			return
		}
		month = time.Month(parsed)
	}

	result, err := h.latenessService.MonthlyReport(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSettings implements LatenessHandler.
func (h *latenessHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.latenessService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateSettings implements LatenessHandler.
func (h *latenessHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req lateness.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.latenessService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Late settings updated", result)
}
