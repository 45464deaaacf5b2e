package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jssrooms/backend/internal/infra/appctx"
	"github.com/jssrooms/backend/internal/infra/ports/http/dto"
	"github.com/jssrooms/backend/internal/usecase"
)

// CheckinHandler serves the admin-operated scanner stations.
type CheckinHandler struct {
	checkinUsecase usecase.CheckinUsecase
}

func NewCheckinHandler(checkinUsecase usecase.CheckinUsecase) *CheckinHandler {
	return &CheckinHandler{checkinUsecase: checkinUsecase}
}

func (h *CheckinHandler) CheckIn(c echo.Context) error {
	var req dto.CheckinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	scannerID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	result, err := h.checkinUsecase.CheckIn(c.Request().Context(), req.Token, scannerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
