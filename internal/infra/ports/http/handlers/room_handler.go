package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jssrooms/backend/internal/application/constant"
	"github.com/jssrooms/backend/internal/domain/input"
	"github.com/jssrooms/backend/internal/infra/appctx"
	"github.com/jssrooms/backend/internal/infra/ports/http/dto"
	"github.com/jssrooms/backend/internal/usecase"
)

type RoomHandler struct {
	roomUsecase usecase.RoomUsecase
}

func NewRoomHandler(roomUsecase usecase.RoomUsecase) *RoomHandler {
	return &RoomHandler{roomUsecase: roomUsecase}
}

func (h *RoomHandler) ListRooms(c echo.Context) error {
	return c.JSON(http.StatusOK, h.roomUsecase.ListOpenRooms(c.Request().Context()))
}

func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req dto.CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	room, err := h.roomUsecase.CreateRoom(c.Request().Context(), &input.CreateRoomInput{
		Title:           req.Title,
		Description:     req.Description,
		OwnerID:         userID,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		slog.Error("create room", slog.Any(constant.Error, err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) CloseRoom(c echo.Context) error {
	var req dto.CloseRoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	if err := h.roomUsecase.CloseRoom(c.Request().Context(), req.RoomID, userID); err != nil {
		slog.Error("close room", slog.String(constant.RoomID, req.RoomID), slog.Any(constant.Error, err))
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
