package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jssrooms/backend/internal/application/constant"
	"github.com/jssrooms/backend/internal/domain/input"
	"github.com/jssrooms/backend/internal/infra/appctx"
	"github.com/jssrooms/backend/internal/infra/ports/http/dto"
	"github.com/jssrooms/backend/internal/usecase"
)

type EventHandler struct {
	eventUsecase        usecase.EventUsecase
	registrationUsecase usecase.RegistrationUsecase
}

func NewEventHandler(eventUsecase usecase.EventUsecase, registrationUsecase usecase.RegistrationUsecase) *EventHandler {
	return &EventHandler{
		eventUsecase:        eventUsecase,
		registrationUsecase: registrationUsecase,
	}
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.eventUsecase.ListEvents(c.Request().Context())
	if err != nil {
		slog.Error("list events", slog.Any(constant.Error, err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, events)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	event, err := h.eventUsecase.CreateEvent(c.Request().Context(), &input.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Location:    req.Location,
		Capacity:    req.Capacity,
		OrganizerID: userID,
		EventDate:   req.EventDate,
	})
	if err != nil {
		slog.Error("create event", slog.Any(constant.Error, err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, event)
}

// Register creates the caller's registration and returns the ticket,
// token value included: the client renders it as the QR code.
func (h *EventHandler) Register(c echo.Context) error {
	var req dto.RegisterForEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if req.EventID == uuid.Nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "event_id is required"})
	}

	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	ticket, err := h.registrationUsecase.Register(c.Request().Context(), userID, req.EventID)
	if err != nil {
		slog.Error(
			"register for event",
			slog.Any(constant.EventID, req.EventID),
			slog.Any(constant.Error, err),
		)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, ticket)
}

func (h *EventHandler) ListRegistrations(c echo.Context) error {
	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	tickets, err := h.registrationUsecase.ListTickets(c.Request().Context(), userID)
	if err != nil {
		slog.Error("list registrations", slog.Any(constant.Error, err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, tickets)
}
