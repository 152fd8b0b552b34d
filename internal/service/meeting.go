package service

import (
	"context"
	"errors"
	"time"

	"github.com/egovmeet/video-verification/internal/cache"
	"github.com/egovmeet/video-verification/internal/model"
	"github.com/egovmeet/video-verification/internal/queue"
	"github.com/egovmeet/video-verification/internal/repository"
	"github.com/egovmeet/video-verification/internal/utils"
)

// joinWindow is how long past the scheduled time a meeting stays joinable for
// the citizen. The meeting secret's TTL runs out at scheduledAt + joinWindow.
const joinWindow = time.Hour

// otpLength is the number of digits in a meeting's one-time password.
const otpLength = 6

// MeetingStore is the durable meeting storage the engine drives.
type MeetingStore interface {
	Create(ctx context.Context, operatorID, citizenID string, scheduledAt time.Time) (model.Meeting, error)
	GetByID(ctx context.Context, id string) (model.Meeting, error)
	Advance(ctx context.Context, id string) (model.Meeting, error)
	Finish(ctx context.Context, id string) error
	ListByOperator(ctx context.Context, operatorID string) ([]repository.MeetingWithCitizen, error)
}

// CitizenStore is the durable citizen storage used to materialize registry
// profiles into rows that meetings can reference.
type CitizenStore interface {
	GetByPin(ctx context.Context, pin string) (model.Citizen, error)
	Create(ctx context.Context, c model.Citizen) (model.Citizen, error)
}

// SecretStore holds the ephemeral per-meeting OTP and citizen snapshot.
type SecretStore interface {
	Set(ctx context.Context, meetingID string, sec model.MeetingSecret, ttl time.Duration) error
	Get(ctx context.Context, meetingID string) (model.MeetingSecret, error)
	Delete(ctx context.Context, meetingID string) error
}

// Publisher emits lifecycle events. Publishing is best-effort: the engine
// never fails an operation because the broker is down.
type Publisher interface {
	Publish(ctx context.Context, ev queue.MeetingLifecycleEvent)
}

// MeetingSummary is a meeting joined with the citizen display fields. The
// one-time password is never part of it; the OTP exists only in the secret
// store and is conveyed to the citizen out of band.
type MeetingSummary struct {
	ID          string
	Status      model.MeetingStatus
	ScheduledAt time.Time
	FirstName   string
	LastName    string
	Patronymic  string
	PinCode     string
	Phone       string
}

// RoomAccess grants entry to the meeting's video room.
type RoomAccess struct {
	RoomToken string
}

// MeetingService drives the meeting lifecycle: scheduling against a cached
// citizen profile, operator and citizen joins, and finishing.
type MeetingService struct {
	meetings MeetingStore
	citizens CitizenStore
	profiles ProfileCache
	secrets  SecretStore
	rooms    utils.RoomTokenConfig
	pub      Publisher
	now      func() time.Time
}

func NewMeetingService(meetings MeetingStore, citizens CitizenStore, profiles ProfileCache,
	secrets SecretStore, rooms utils.RoomTokenConfig, pub Publisher) *MeetingService {
	return &MeetingService{
		meetings: meetings,
		citizens: citizens,
		profiles: profiles,
		secrets:  secrets,
		rooms:    rooms,
		pub:      pub,
		now:      time.Now,
	}
}

// Create schedules a meeting for a citizen whose profile is already in the
// cache; scheduling without a preceding lookup reports the citizen as not
// found. The citizen is materialized into a durable row, a one-time password
// is generated, and the OTP together with the profile snapshot is stored
// until scheduledAt plus the join window.
func (s *MeetingService) Create(ctx context.Context, operatorID, pinCode, phone string, scheduledAt time.Time) (MeetingSummary, error) {
	profile, err := s.profiles.Get(ctx, pinCode)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return MeetingSummary{}, repository.ErrCitizenNotFound
		}
		return MeetingSummary{}, err
	}

	citizen, err := s.materialize(ctx, profile, phone)
	if err != nil {
		return MeetingSummary{}, err
	}

	m, err := s.meetings.Create(ctx, operatorID, citizen.ID, scheduledAt)
	if err != nil {
		return MeetingSummary{}, err
	}

	otp, err := utils.GenerateOTP(otpLength)
	if err != nil {
		return MeetingSummary{}, err
	}
	ttl := m.ScheduledAt.Add(joinWindow).Sub(s.now())
	sec := model.MeetingSecret{OTP: otp, Citizen: profile}
	if err := s.secrets.Set(ctx, m.ID, sec, ttl); err != nil {
		return MeetingSummary{}, err
	}

	s.pub.Publish(ctx, queue.MeetingLifecycleEvent{
		Event:       queue.EventMeetingScheduled,
		MeetingID:   m.ID,
		OperatorID:  operatorID,
		CitizenPin:  citizen.PinCode,
		ScheduledAt: m.ScheduledAt.Format(time.RFC3339),
		OccurredAt:  s.now().UTC().Format(time.RFC3339),
	})

	return summary(m, citizen), nil
}

// JoinOperator admits an operator to a meeting's room as moderator, advancing
// the lifecycle one step. Any operator may join any meeting; the identity
// only shapes the room token.
func (s *MeetingService) JoinOperator(ctx context.Context, operatorName, operatorUsername, meetingID string) (RoomAccess, error) {
	m, err := s.meetings.Advance(ctx, meetingID)
	if err != nil {
		return RoomAccess{}, err
	}
	tok, err := utils.NewRoomToken(s.rooms, m.ID, utils.RoomIdentity{
		Moderator: true,
		Name:      operatorName,
		Username:  operatorUsername,
	})
	if err != nil {
		return RoomAccess{}, err
	}
	return RoomAccess{RoomToken: tok}, nil
}

// JoinCitizen admits the citizen to the room after checking the submitted
// code against the meeting's one-time password. An expired or finished
// meeting has no secret and looks absent.
func (s *MeetingService) JoinCitizen(ctx context.Context, meetingID, otp string) (RoomAccess, error) {
	m, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return RoomAccess{}, err
	}
	if m.Status.Terminal() {
		return RoomAccess{}, repository.ErrMeetingNotFound
	}
	sec, err := s.secrets.Get(ctx, meetingID)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return RoomAccess{}, repository.ErrMeetingNotFound
		}
		return RoomAccess{}, err
	}
	if sec.OTP != otp {
		return RoomAccess{}, ErrInvalidOTP
	}
	if _, err := s.meetings.Advance(ctx, meetingID); err != nil {
		return RoomAccess{}, err
	}
	tok, err := utils.NewRoomToken(s.rooms, m.ID, utils.RoomIdentity{
		Moderator: false,
		Name:      sec.Citizen.FirstName + " " + sec.Citizen.LastName,
		Username:  sec.Citizen.PinCode,
	})
	if err != nil {
		return RoomAccess{}, err
	}
	return RoomAccess{RoomToken: tok}, nil
}

// Finish closes a meeting unconditionally and drops its secret. Finishing a
// meeting that is already terminal succeeds again with the same outcome, and
// any operator may finish any meeting; the caller is recorded in the
// lifecycle event.
func (s *MeetingService) Finish(ctx context.Context, operatorID, meetingID string) error {
	if err := s.meetings.Finish(ctx, meetingID); err != nil {
		return err
	}
	if err := s.secrets.Delete(ctx, meetingID); err != nil {
		return err
	}
	s.pub.Publish(ctx, queue.MeetingLifecycleEvent{
		Event:      queue.EventMeetingFinished,
		MeetingID:  meetingID,
		OperatorID: operatorID,
		OccurredAt: s.now().UTC().Format(time.RFC3339),
	})
	return nil
}

// List returns the operator's meetings, soonest first.
func (s *MeetingService) List(ctx context.Context, operatorID string) ([]MeetingSummary, error) {
	rows, err := s.meetings.ListByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	out := make([]MeetingSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, summary(row.Meeting, row.Citizen))
	}
	return out, nil
}

// materialize ensures a durable citizen row exists for the profile, using the
// phone supplied with the scheduling request.
func (s *MeetingService) materialize(ctx context.Context, p model.CitizenProfile, phone string) (model.Citizen, error) {
	pin := utils.CanonicalPin(p.PinCode)
	c, err := s.citizens.GetByPin(ctx, pin)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrCitizenNotFound) {
		return model.Citizen{}, err
	}
	return s.citizens.Create(ctx, model.Citizen{
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Patronymic: p.Patronymic,
		PinCode:    pin,
		Phone:      phone,
	})
}

func summary(m model.Meeting, c model.Citizen) MeetingSummary {
	return MeetingSummary{
		ID:          m.ID,
		Status:      m.Status,
		ScheduledAt: m.ScheduledAt,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Patronymic:  c.Patronymic,
		PinCode:     c.PinCode,
		Phone:       c.Phone,
	}
}
