package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/egovmeet/video-verification/internal/repository"
	"github.com/egovmeet/video-verification/internal/service"
	"github.com/egovmeet/video-verification/internal/utils"
)

type CitizenHandler struct {
	Citizens *service.CitizenService
}

func NewCitizenHandler(citizens *service.CitizenService) *CitizenHandler {
	return &CitizenHandler{Citizens: citizens}
}

// GetCitizen resolves a pin code to a citizen profile, cache first. The pin
// in the path is matched case-insensitively; I and O never appear in pins.
func (h *CitizenHandler) GetCitizen(c echo.Context) error {
	pin := strings.TrimSpace(c.Param("pinCode"))
	if !utils.ValidPinCode(pin) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "malformed pin code")
	}

	p, err := h.Citizens.Lookup(c.Request().Context(), pin)
	if err != nil {
		if errors.Is(err, repository.ErrCitizenNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "citizen not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, p)
}
