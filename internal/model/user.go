package model

import "time"

// User represents an application user record as stored in the
// `users` table. Identity is keyed by the E.164-normalized phone
// number; accounts are created on first successful code
// verification, so a user may exist without ever picking a
// username.
//
// Fields:
//  ID          – primary key identifier (prefixed UUID, e.g. "u-...").
//  PhoneNumber – unique phone number in +972 E.164 form.
//  Username    – optional unique handle chosen at registration.
//  FullName    – display name; generated from the phone number when
//                the account is auto-created.
//  Banned      – whether the user is blocked from voting and booking.
//  CreatedAt   – timestamp of creation.
type User struct {
	ID          string    `json:"id"`                 // users.id
	PhoneNumber string    `json:"phone_number"`       // users.phone_number
	Username    string    `json:"username,omitempty"` // users.username (empty until registered)
	FullName    string    `json:"full_name"`          // users.full_name
	Banned      bool      `json:"banned"`             // users.banned
	CreatedAt   time.Time `json:"created_at"`         // users.created_at
}
