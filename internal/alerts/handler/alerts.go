package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"

	"stockwatch-system/internal/alerts"
	"stockwatch-system/internal/gateway/middleware"
)

type AlertsHTTPHandler struct {
	service *alerts.Service
	timeout time.Duration
}

func NewAlertsHTTPHandler(service *alerts.Service, timeout time.Duration) *AlertsHTTPHandler {
	return &AlertsHTTPHandler{
		service: service,
		timeout: timeout,
	}
}

// --- Helpers ---

func (s *AlertsHTTPHandler) error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   message,
	})
}

func (s *AlertsHTTPHandler) fail(c *gin.Context, err error) {
	s.error(c, httpStatus(alerts.Code(err)), err.Error())
}

func httpStatus(code codes.Code) int {
	switch code {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *AlertsHTTPHandler) companyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("company_id"), 10, 64)
	if err != nil || id <= 0 {
		s.error(c, http.StatusBadRequest, "company_id must be a positive integer")
		return 0, false
	}
	if !middleware.CanAccessCompany(c, id) {
		s.error(c, http.StatusForbidden, "access to company denied")
		return 0, false
	}
	return id, true
}

// --- Endpoints ---

func (s *AlertsHTTPHandler) GetLowStockAlerts(c *gin.Context) {
	companyID, ok := s.companyID(c)
	if !ok {
		return
	}

	var warehouseID *int64
	if str := c.Query("warehouse_id"); str != "" {
		v, err := strconv.ParseInt(str, 10, 64)
		if err != nil || v <= 0 {
			s.error(c, http.StatusBadRequest, "warehouse_id must be a positive integer")
			return
		}
		warehouseID = &v
	}

	daysThreshold := alerts.DefaultLookbackDays
	if str := c.Query("days_threshold"); str != "" {
		v, err := strconv.Atoi(str)
		if err != nil || v <= 0 {
			s.error(c, http.StatusBadRequest, "days_threshold must be a positive integer")
			return
		}
		daysThreshold = v
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()

	report, err := s.service.GetLowStockAlerts(ctx, companyID, warehouseID, daysThreshold)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *AlertsHTTPHandler) GetLowStockSummary(c *gin.Context) {
	companyID, ok := s.companyID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()

	summary, err := s.service.GetLowStockSummary(ctx, companyID)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
