package http

import (
	"encoding/json"
	"net/http"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/attendance"
	"github.com/EethalTeam/enis-hrm-go/internal/domain/report"
	"github.com/EethalTeam/enis-hrm-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetAllByDate(w http.ResponseWriter, r *http.Request)
	GetEmployeeHistory(w http.ResponseWriter, r *http.Request)
	GetAttendanceSummary(w http.ResponseWriter, r *http.Request)
	GetMonthlyReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetAllByDate implements ReportHandler.
func (h *reportHandlerImpl) GetAllByDate(w http.ResponseWriter, r *http.Request) {
	var req attendance.AllByDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.reportService.GetAllByDate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeHistory implements ReportHandler.
func (h *reportHandlerImpl) GetEmployeeHistory(w http.ResponseWriter, r *http.Request) {
	var req attendance.HistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.reportService.GetEmployeeHistory(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAttendanceSummary implements ReportHandler.
func (h *reportHandlerImpl) GetAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	var req report.SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.reportService.GetDailySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthlyReport implements ReportHandler.
func (h *reportHandlerImpl) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	var req report.MonthlyReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.reportService.GetMonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
