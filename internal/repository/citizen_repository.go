package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/egovmeet/video-verification/internal/model"
)

const citizenCols = "id, first_name, last_name, patronymic, pin_code, phone, created_at"

type CitizenRepo struct{ DB *sql.DB }

func NewCitizenRepo(db *sql.DB) *CitizenRepo { return &CitizenRepo{DB: db} }

// GetByPin fetches a citizen by canonical (uppercase) pin code.
func (r *CitizenRepo) GetByPin(ctx context.Context, pin string) (model.Citizen, error) {
	var c model.Citizen
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+citizenCols+" FROM citizens WHERE pin_code = ? LIMIT 1", pin).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Patronymic, &c.PinCode, &c.Phone, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Citizen{}, ErrCitizenNotFound
	}
	if err != nil {
		return model.Citizen{}, err
	}
	return c, nil
}

// Create inserts a citizen row materialized from a cached registry profile.
// The pin_code column is unique; losing a race with a concurrent
// materialization is resolved by returning the row that won.
func (r *CitizenRepo) Create(ctx context.Context, c model.Citizen) (model.Citizen, error) {
	c.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO citizens (id, first_name, last_name, patronymic, pin_code, phone) VALUES (?,?,?,?,?,?)",
		c.ID, c.FirstName, c.LastName, c.Patronymic, c.PinCode, c.Phone)
	if err != nil && !isDuplicate(err) {
		return model.Citizen{}, err
	}
	return r.GetByPin(ctx, c.PinCode)
}
