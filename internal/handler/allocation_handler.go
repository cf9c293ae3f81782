package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/smartcampus/allocator/internal/dto"
	"github.com/smartcampus/allocator/internal/models"
	"github.com/smartcampus/allocator/internal/service"
)

type AllocationHandler struct {
	svc      service.AllocationService
	validate *validator.Validate
}

func NewAllocationHandler(svc service.AllocationService) *AllocationHandler {
	return &AllocationHandler{svc: svc, validate: validator.New()}
}

func (h *AllocationHandler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/users", h.CreateUser)
	api.GET("/users", h.ListUsers)
	api.GET("/users/:id/schedule", h.GetUserSchedule)

	api.POST("/resources", h.CreateResource)
	api.GET("/resources", h.ListResources)
	api.POST("/resources/:id/bookings", h.CreateBooking)
	api.GET("/resources/:id/bookings", h.ListResourceBookings)

	api.GET("/bookings", h.ListBookings)
	api.DELETE("/bookings/:id", h.CancelBooking)

	api.GET("/waitlist", h.ListWaiting)

	api.POST("/state/save", h.SaveState)
	api.POST("/state/load", h.LoadState)
}

func (h *AllocationHandler) CreateUser(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.svc.RegisterUser(c.Request().Context(), req.Name, models.Role(req.Role))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *AllocationHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = dto.ToUserResponse(&users[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AllocationHandler) GetUserSchedule(c echo.Context) error {
	schedule, err := h.svc.UserSchedule(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserScheduleResponse(schedule))
}

func (h *AllocationHandler) CreateResource(c echo.Context) error {
	var req dto.CreateResourceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resource, err := h.svc.RegisterResource(c.Request().Context(), req.Name, req.Capacity, req.Location, req.Description)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToResourceResponse(resource))
}

func (h *AllocationHandler) ListResources(c echo.Context) error {
	resources, err := h.svc.ListResources(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.ResourceResponse, len(resources))
	for i := range resources {
		resp[i] = dto.ToResourceResponse(&resources[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AllocationHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	out, err := h.svc.SubmitRequest(c.Request().Context(), req.UserID, c.Param("id"), req.StartTime, req.EndTime)
	if err != nil {
		return toHTTPError(err)
	}

	status := http.StatusCreated
	if out.Status == models.StatusWaitlisted {
		status = http.StatusAccepted
	}
	return c.JSON(status, dto.ToOutcomeResponse(out))
}

func (h *AllocationHandler) ListResourceBookings(c echo.Context) error {
	bookings, err := h.svc.ListBookings(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *AllocationHandler) ListBookings(c echo.Context) error {
	bookings, err := h.svc.ListBookings(c.Request().Context(), c.QueryParam("resource_id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *AllocationHandler) CancelBooking(c echo.Context) error {
	var req dto.CancelBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.svc.CancelBooking(c.Request().Context(), c.Param("id"), req.UserID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AllocationHandler) ListWaiting(c echo.Context) error {
	waiting, err := h.svc.ListWaiting(c.Request().Context(), c.QueryParam("resource_id"))
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.RequestResponse, len(waiting))
	for i := range waiting {
		resp[i] = dto.ToRequestResponse(&waiting[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AllocationHandler) SaveState(c echo.Context) error {
	if err := h.svc.SaveState(c.Request().Context()); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.StateResponse{Message: "state saved"})
}

func (h *AllocationHandler) LoadState(c echo.Context) error {
	if err := h.svc.LoadState(c.Request().Context()); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.StateResponse{Message: "state loaded"})
}

func toBookingResponses(bookings []models.Booking) []dto.BookingResponse {
	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return resp
}

func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrUnknownUser),
		errors.Is(err, service.ErrUnknownResource),
		errors.Is(err, service.ErrBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrStartInPast),
		errors.Is(err, service.ErrInvalidRole):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoStateStore):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
