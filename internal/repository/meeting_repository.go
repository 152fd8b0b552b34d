package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/egovmeet/video-verification/internal/model"
)

const meetingCols = "id, operator_id, citizen_id, scheduled_at, status, created_at"

type MeetingRepo struct{ DB *sql.DB }

func NewMeetingRepo(db *sql.DB) *MeetingRepo { return &MeetingRepo{DB: db} }

// MeetingWithCitizen pairs a meeting row with the citizen display fields the
// operator listing needs.
type MeetingWithCitizen struct {
	Meeting model.Meeting
	Citizen model.Citizen
}

// Create inserts a CREATED meeting, enforcing the one-non-terminal-meeting-
// per-citizen rule. The check and the insert run in a single transaction with
// the citizen row locked, so concurrent creations for the same citizen
// serialize instead of both passing the check.
func (r *MeetingRepo) Create(ctx context.Context, operatorID, citizenID string, scheduledAt time.Time) (model.Meeting, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Meeting{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var lockedID string
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM citizens WHERE id = ? FOR UPDATE", citizenID).Scan(&lockedID)
	if err == sql.ErrNoRows {
		return model.Meeting{}, ErrCitizenNotFound
	}
	if err != nil {
		return model.Meeting{}, err
	}

	var n int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM meetings WHERE citizen_id = ? AND status NOT IN (?,?)",
		citizenID, model.StatusFinished, model.StatusCancelled).Scan(&n)
	if err != nil {
		return model.Meeting{}, err
	}
	if n > 0 {
		return model.Meeting{}, ErrMeetingAlreadyScheduled
	}

	m := model.Meeting{
		ID:          uuid.NewString(),
		OperatorID:  operatorID,
		CitizenID:   citizenID,
		ScheduledAt: scheduledAt.UTC(),
		Status:      model.StatusCreated,
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO meetings (id, operator_id, citizen_id, scheduled_at, status) VALUES (?,?,?,?,?)",
		m.ID, m.OperatorID, m.CitizenID, m.ScheduledAt, m.Status); err != nil {
		return model.Meeting{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Meeting{}, err
	}
	committed = true
	return r.GetByID(ctx, m.ID)
}

// GetByID fetches a meeting by id.
func (r *MeetingRepo) GetByID(ctx context.Context, id string) (model.Meeting, error) {
	var m model.Meeting
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+meetingCols+" FROM meetings WHERE id = ? LIMIT 1", id).
		Scan(&m.ID, &m.OperatorID, &m.CitizenID, &m.ScheduledAt, &m.Status, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Meeting{}, ErrMeetingNotFound
	}
	if err != nil {
		return model.Meeting{}, err
	}
	return m, nil
}

// Advance moves a meeting one lifecycle step under a row lock and returns the
// updated row. Terminal meetings report ErrMeetingNotFound so callers cannot
// tell them apart from deleted ones.
func (r *MeetingRepo) Advance(ctx context.Context, id string) (model.Meeting, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Meeting{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var m model.Meeting
	err = tx.QueryRowContext(ctx,
		"SELECT "+meetingCols+" FROM meetings WHERE id = ? FOR UPDATE", id).
		Scan(&m.ID, &m.OperatorID, &m.CitizenID, &m.ScheduledAt, &m.Status, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Meeting{}, ErrMeetingNotFound
	}
	if err != nil {
		return model.Meeting{}, err
	}
	if m.Status.Terminal() {
		return model.Meeting{}, ErrMeetingNotFound
	}

	if next := m.Status.Next(); next != m.Status {
		if _, err := tx.ExecContext(ctx,
			"UPDATE meetings SET status = ? WHERE id = ?", next, m.ID); err != nil {
			return model.Meeting{}, err
		}
		m.Status = next
	}
	if err := tx.Commit(); err != nil {
		return model.Meeting{}, err
	}
	committed = true
	return m, nil
}

// Finish unconditionally marks a meeting FINISHED whatever its current state,
// terminal states included.
func (r *MeetingRepo) Finish(ctx context.Context, id string) error {
	var existing string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM meetings WHERE id = ? LIMIT 1", id).Scan(&existing)
	if err == sql.ErrNoRows {
		return ErrMeetingNotFound
	}
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE meetings SET status = ? WHERE id = ?", model.StatusFinished, id)
	return err
}

// ListByOperator returns the operator's meetings joined with citizen display
// data, soonest first.
func (r *MeetingRepo) ListByOperator(ctx context.Context, operatorID string) ([]MeetingWithCitizen, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT m.id, m.operator_id, m.citizen_id, m.scheduled_at, m.status, m.created_at,
		       c.id, c.first_name, c.last_name, c.patronymic, c.pin_code, c.phone, c.created_at
		FROM meetings m
		JOIN citizens c ON c.id = m.citizen_id
		WHERE m.operator_id = ?
		ORDER BY m.scheduled_at`, operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MeetingWithCitizen
	for rows.Next() {
		var mc MeetingWithCitizen
		if err := rows.Scan(
			&mc.Meeting.ID, &mc.Meeting.OperatorID, &mc.Meeting.CitizenID,
			&mc.Meeting.ScheduledAt, &mc.Meeting.Status, &mc.Meeting.CreatedAt,
			&mc.Citizen.ID, &mc.Citizen.FirstName, &mc.Citizen.LastName,
			&mc.Citizen.Patronymic, &mc.Citizen.PinCode, &mc.Citizen.Phone,
			&mc.Citizen.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, mc)
	}
	return out, rows.Err()
}
