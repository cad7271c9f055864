package handler

import (
	"net/http"
	"strconv"
	"time"

	"tillpoint/internal/middleware"
	"tillpoint/internal/service"
	"tillpoint/pkg/logger"
)

const reportDateLayout = "2006-01-02"

type ReportHandler struct {
	reportService service.ReportServiceInterface
	logger        *logger.Logger
}

func NewReportHandler(reportService service.ReportServiceInterface, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        log.WithComponent("report_handler"),
	}
}

// GetSalesSummary handles GET /api/v1/reports/summary?start=YYYY-MM-DD&end=YYYY-MM-DD
//
// Both bounds are interpreted as dates; end is inclusive as a date, so the
// query covers up to but excluding midnight after it. Missing bounds default
// to today.
func (h *ReportHandler) GetSalesSummary(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start

	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := time.ParseInLocation(reportDateLayout, raw, now.Location())
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "invalid start date, expected YYYY-MM-DD")
			return
		}
		start = parsed
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		parsed, err := time.ParseInLocation(reportDateLayout, raw, now.Location())
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "invalid end date, expected YYYY-MM-DD")
			return
		}
		end = parsed
	}

	summary, err := h.reportService.GetSalesSummary(middleware.UserID(r.Context()), start, end.AddDate(0, 0, 1))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, summary)
}

// GetPopularProducts handles GET /api/v1/reports/popular?limit=N
func (h *ReportHandler) GetPopularProducts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	popular, err := h.reportService.GetPopularProducts(middleware.UserID(r.Context()), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, popular)
}
