// Package service implements the booking workflow: the eligibility and
// capacity rules that decide whether a booking may be created or moved.
// Failures are one of two closed variants so the HTTP boundary can map
// them to status codes without inspecting strings.
package service

import "errors"

// ErrNotFound means a referenced entity (enrollment, ticket, room) does
// not exist. The boundary maps it to HTTP 404.
var ErrNotFound = errors.New("no result for this search")

// ErrForbidden means a business-rule gate failed: ineligible ticket,
// room at capacity, booking ownership mismatch, or no booking on the
// read path. The boundary maps it to HTTP 403.
var ErrForbidden = errors.New("you do not have permission to do this action")
