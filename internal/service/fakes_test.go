package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/egovmeet/video-verification/internal/cache"
	"github.com/egovmeet/video-verification/internal/model"
	"github.com/egovmeet/video-verification/internal/queue"
	"github.com/egovmeet/video-verification/internal/registry"
	"github.com/egovmeet/video-verification/internal/repository"
)

// In-memory fakes mirroring the semantics of the MySQL repositories and the
// Redis stores, so the services can be exercised without either backend.

type memUsers struct {
	byID map[string]model.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]model.User{}} }

func (m *memUsers) Create(_ context.Context, username, passwordHash, firstName, lastName, role string) (model.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			return model.User{}, repository.ErrUserExists
		}
	}
	u := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.byID[u.ID] = u
	return u, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, id string) (model.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	u := m.byID[id]
	u.LastLoginAt = &at
	m.byID[id] = u
	return nil
}

type memTokens struct {
	byUser  map[string]string // userID -> tokenHash
	byToken map[string]string // tokenHash -> userID
	lastTTL time.Duration
}

func newMemTokens() *memTokens {
	return &memTokens{byUser: map[string]string{}, byToken: map[string]string{}}
}

func (m *memTokens) Save(_ context.Context, userID, tokenHash string, ttl time.Duration) error {
	if old, ok := m.byUser[userID]; ok {
		delete(m.byToken, old)
	}
	m.byUser[userID] = tokenHash
	m.byToken[tokenHash] = userID
	m.lastTTL = ttl
	return nil
}

func (m *memTokens) UserIDByToken(_ context.Context, tokenHash string) (string, error) {
	id, ok := m.byToken[tokenHash]
	if !ok {
		return "", cache.ErrNotFound
	}
	return id, nil
}

func (m *memTokens) Delete(_ context.Context, userID string) (bool, error) {
	hash, ok := m.byUser[userID]
	if !ok {
		return false, nil
	}
	delete(m.byToken, hash)
	delete(m.byUser, userID)
	return true, nil
}

type memCitizens struct {
	byPin map[string]model.Citizen
}

func newMemCitizens() *memCitizens { return &memCitizens{byPin: map[string]model.Citizen{}} }

func (m *memCitizens) GetByPin(_ context.Context, pin string) (model.Citizen, error) {
	c, ok := m.byPin[pin]
	if !ok {
		return model.Citizen{}, repository.ErrCitizenNotFound
	}
	return c, nil
}

func (m *memCitizens) Create(_ context.Context, c model.Citizen) (model.Citizen, error) {
	if existing, ok := m.byPin[c.PinCode]; ok {
		return existing, nil
	}
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	m.byPin[c.PinCode] = c
	return c, nil
}

type memMeetings struct {
	byID     map[string]model.Meeting
	citizens *memCitizens
}

func newMemMeetings(citizens *memCitizens) *memMeetings {
	return &memMeetings{byID: map[string]model.Meeting{}, citizens: citizens}
}

func (m *memMeetings) Create(_ context.Context, operatorID, citizenID string, scheduledAt time.Time) (model.Meeting, error) {
	for _, mt := range m.byID {
		if mt.CitizenID == citizenID && !mt.Status.Terminal() {
			return model.Meeting{}, repository.ErrMeetingAlreadyScheduled
		}
	}
	mt := model.Meeting{
		ID:          uuid.NewString(),
		OperatorID:  operatorID,
		CitizenID:   citizenID,
		ScheduledAt: scheduledAt.UTC(),
		Status:      model.StatusCreated,
		CreatedAt:   time.Now(),
	}
	m.byID[mt.ID] = mt
	return mt, nil
}

func (m *memMeetings) GetByID(_ context.Context, id string) (model.Meeting, error) {
	mt, ok := m.byID[id]
	if !ok {
		return model.Meeting{}, repository.ErrMeetingNotFound
	}
	return mt, nil
}

func (m *memMeetings) Advance(_ context.Context, id string) (model.Meeting, error) {
	mt, ok := m.byID[id]
	if !ok || mt.Status.Terminal() {
		return model.Meeting{}, repository.ErrMeetingNotFound
	}
	mt.Status = mt.Status.Next()
	m.byID[id] = mt
	return mt, nil
}

func (m *memMeetings) Finish(_ context.Context, id string) error {
	mt, ok := m.byID[id]
	if !ok {
		return repository.ErrMeetingNotFound
	}
	mt.Status = model.StatusFinished
	m.byID[id] = mt
	return nil
}

func (m *memMeetings) ListByOperator(_ context.Context, operatorID string) ([]repository.MeetingWithCitizen, error) {
	var out []repository.MeetingWithCitizen
	for _, mt := range m.byID {
		if mt.OperatorID != operatorID {
			continue
		}
		var cit model.Citizen
		for _, c := range m.citizens.byPin {
			if c.ID == mt.CitizenID {
				cit = c
				break
			}
		}
		out = append(out, repository.MeetingWithCitizen{Meeting: mt, Citizen: cit})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Meeting.ScheduledAt.Before(out[j].Meeting.ScheduledAt)
	})
	return out, nil
}

type memProfiles struct {
	byPin map[string]model.CitizenProfile
	sets  int
}

func newMemProfiles() *memProfiles {
	return &memProfiles{byPin: map[string]model.CitizenProfile{}}
}

func (m *memProfiles) Get(_ context.Context, pin string) (model.CitizenProfile, error) {
	p, ok := m.byPin[strings.ToLower(pin)]
	if !ok {
		return model.CitizenProfile{}, cache.ErrNotFound
	}
	return p, nil
}

func (m *memProfiles) Set(_ context.Context, pin string, p model.CitizenProfile) error {
	m.byPin[strings.ToLower(pin)] = p
	m.sets++
	return nil
}

type memSecrets struct {
	byID    map[string]model.MeetingSecret
	lastTTL time.Duration
}

func newMemSecrets() *memSecrets { return &memSecrets{byID: map[string]model.MeetingSecret{}} }

func (m *memSecrets) Set(_ context.Context, meetingID string, sec model.MeetingSecret, ttl time.Duration) error {
	m.lastTTL = ttl
	if ttl <= 0 {
		return nil
	}
	m.byID[meetingID] = sec
	return nil
}

func (m *memSecrets) Get(_ context.Context, meetingID string) (model.MeetingSecret, error) {
	sec, ok := m.byID[meetingID]
	if !ok {
		return model.MeetingSecret{}, cache.ErrNotFound
	}
	return sec, nil
}

func (m *memSecrets) Delete(_ context.Context, meetingID string) error {
	delete(m.byID, meetingID)
	return nil
}

type recPublisher struct {
	events []queue.MeetingLifecycleEvent
}

func (p *recPublisher) Publish(_ context.Context, ev queue.MeetingLifecycleEvent) {
	p.events = append(p.events, ev)
}

type fakeRegistry struct {
	byPin map[string]model.CitizenProfile
	calls int
}

func (f *fakeRegistry) Lookup(_ context.Context, pin string) (model.CitizenProfile, error) {
	f.calls++
	p, ok := f.byPin[strings.ToLower(pin)]
	if !ok {
		return model.CitizenProfile{}, registry.ErrNotFound
	}
	return p, nil
}
