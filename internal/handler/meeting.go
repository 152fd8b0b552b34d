package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/egovmeet/video-verification/internal/model"
	"github.com/egovmeet/video-verification/internal/repository"
	"github.com/egovmeet/video-verification/internal/service"
	"github.com/egovmeet/video-verification/internal/utils"
)

type MeetingHandler struct {
	Meetings *service.MeetingService
	Users    service.UserStore
}

func NewMeetingHandler(meetings *service.MeetingService, users service.UserStore) *MeetingHandler {
	return &MeetingHandler{Meetings: meetings, Users: users}
}

type createMeetingReq struct {
	CitizenPinCode string `json:"citizenPinCode"`
	CitizenPhone   string `json:"citizenPhone"`
	ScheduledAt    string `json:"scheduledAt"`
}

type joinCitizenReq struct {
	OTP string `json:"otp"`
}

type meetingResp struct {
	ID          string              `json:"id"`
	Status      model.MeetingStatus `json:"status"`
	ScheduledAt time.Time           `json:"scheduledAt"`
	FirstName   string              `json:"firstName"`
	LastName    string              `json:"lastName"`
	Patronymic  string              `json:"patronymic"`
	PinCode     string              `json:"pinCode"`
	Phone       string              `json:"phone"`
}

type roomAccessResp struct {
	RoomToken string `json:"roomToken"`
}

func toMeetingResp(m service.MeetingSummary) meetingResp {
	return meetingResp{
		ID:          m.ID,
		Status:      m.Status,
		ScheduledAt: m.ScheduledAt,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Patronymic:  m.Patronymic,
		PinCode:     m.PinCode,
		Phone:       m.Phone,
	}
}

// meetingID validates the :meetingId path parameter.
func meetingID(c echo.Context) (string, error) {
	raw := strings.TrimSpace(c.Param("meetingId"))
	if _, err := uuid.Parse(raw); err != nil {
		return "", echo.NewHTTPError(http.StatusUnprocessableEntity, "malformed meeting id")
	}
	return raw, nil
}

// CreateMeeting schedules a meeting with a citizen whose profile was looked
// up beforehand. The one-time password never appears on this surface; it is
// conveyed to the citizen out of band.
func (h *MeetingHandler) CreateMeeting(c echo.Context) error {
	operatorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req createMeetingReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.CitizenPinCode = strings.TrimSpace(req.CitizenPinCode)
	req.CitizenPhone = strings.TrimSpace(req.CitizenPhone)

	if !utils.ValidPinCode(req.CitizenPinCode) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "malformed pin code")
	}
	if !utils.ValidPhone(req.CitizenPhone) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "malformed phone number")
	}
	scheduledAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.ScheduledAt))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "scheduledAt must be RFC 3339")
	}

	m, err := h.Meetings.Create(c.Request().Context(),
		operatorID, req.CitizenPinCode, req.CitizenPhone, scheduledAt)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCitizenNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "citizen not found")
		case errors.Is(err, repository.ErrMeetingAlreadyScheduled):
			return echo.NewHTTPError(http.StatusConflict, "citizen already has an active meeting")
		}
		return err
	}
	return c.JSON(http.StatusCreated, toMeetingResp(m))
}

// JoinOperator admits an operator to the meeting room as moderator.
func (h *MeetingHandler) JoinOperator(c echo.Context) error {
	operatorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := meetingID(c)
	if err != nil {
		return err
	}

	u, err := h.Users.GetByID(c.Request().Context(), operatorID)
	if err != nil {
		return err
	}
	access, err := h.Meetings.JoinOperator(c.Request().Context(),
		u.FirstName+" "+u.LastName, u.Username, id)
	if err != nil {
		if errors.Is(err, repository.ErrMeetingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "meeting not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, roomAccessResp{RoomToken: access.RoomToken})
}

// JoinCitizen admits the citizen after OTP verification. No authentication:
// the meeting id plus the one-time password is the citizen's credential.
func (h *MeetingHandler) JoinCitizen(c echo.Context) error {
	id, err := meetingID(c)
	if err != nil {
		return err
	}

	var req joinCitizenReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.OTP = strings.TrimSpace(req.OTP)
	if !utils.ValidOTP(req.OTP) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "malformed otp")
	}

	access, err := h.Meetings.JoinCitizen(c.Request().Context(), id, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMeetingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "meeting not found")
		case errors.Is(err, service.ErrInvalidOTP):
			return echo.NewHTTPError(http.StatusBadRequest, "otp does not match")
		}
		return err
	}
	return c.JSON(http.StatusOK, roomAccessResp{RoomToken: access.RoomToken})
}

// FinishMeeting closes a meeting and discards its secret.
func (h *MeetingHandler) FinishMeeting(c echo.Context) error {
	operatorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := meetingID(c)
	if err != nil {
		return err
	}

	if err := h.Meetings.Finish(c.Request().Context(), operatorID, id); err != nil {
		if errors.Is(err, repository.ErrMeetingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "meeting not found")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMeetings returns the caller's meetings, soonest first.
func (h *MeetingHandler) ListMeetings(c echo.Context) error {
	operatorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	meetings, err := h.Meetings.List(c.Request().Context(), operatorID)
	if err != nil {
		return err
	}
	out := make([]meetingResp, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, toMeetingResp(m))
	}
	return c.JSON(http.StatusOK, out)
}
