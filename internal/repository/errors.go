// Package repository implements the data access layer over MySQL.  This file
// defines sentinel error values shared by the repositories so that handlers
// can map failures to HTTP statuses with errors.Is instead of inspecting
// driver errors.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a record with the requested id does not
// exist.  Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrSeatTaken is returned when a ticket write would occupy a seat that is
// already sold for the same travel date, route and layout.  Handlers
// translate this into an HTTP 409 response.
var ErrSeatTaken = errors.New("seat already taken")

// ErrUsernameExists is returned when a user insert collides with an existing
// username.  Handlers translate this into an HTTP 409 response.
var ErrUsernameExists = errors.New("username already exists")

// isDuplicateKey reports whether err is a MySQL duplicate-entry failure
// (error 1062), which the tickets and users tables raise via their unique
// keys.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
