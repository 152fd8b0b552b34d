package model

import "time"

// Citizen mirrors the `citizens` table. A row is materialized lazily from the
// cached registry profile the first time a meeting is scheduled for its pin
// code, using the phone number supplied with that scheduling request.
//
// Fields:
//
//	ID         – primary key (UUID string).
//	PinCode    – 7-char national pin, stored uppercase, unique.
//	Phone      – national format: 994 followed by 9 digits.
type Citizen struct {
	ID         string    // citizens.id
	FirstName  string    // citizens.first_name
	LastName   string    // citizens.last_name
	Patronymic string    // citizens.patronymic
	PinCode    string    // citizens.pin_code
	Phone      string    // citizens.phone
	CreatedAt  time.Time // citizens.created_at
}

// CitizenProfile is the identity record returned by the ASAN registry lookup.
// It is cached in Redis under the lowercased pin code and snapshotted into
// each meeting secret so citizen join can mint a room token without another
// registry round-trip.
type CitizenProfile struct {
	PinCode        string    `json:"pinCode"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Patronymic     string    `json:"patronymic"`
	DocumentNumber string    `json:"documentNumber"`
	AddressLine    string    `json:"addressLine"`
	DateOfBirth    time.Time `json:"dateOfBirth"`
}
