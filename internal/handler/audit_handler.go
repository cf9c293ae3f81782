package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/smartcampus/allocator/internal/audit"
)

// AuditHandler exposes the allocation audit trail. Registered only when the
// Postgres trail is configured.
type AuditHandler struct {
	recorder *audit.Recorder
}

func NewAuditHandler(recorder *audit.Recorder) *AuditHandler {
	return &AuditHandler{recorder: recorder}
}

func (h *AuditHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/audit", h.ListEvents)
}

func (h *AuditHandler) ListEvents(c echo.Context) error {
	limit := 0
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}

	events, err := h.recorder.List(c.Request().Context(), c.QueryParam("resource_id"), c.QueryParam("kind"), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, events)
}
