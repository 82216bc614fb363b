// Package service implements the catalog's domain operations on top of a
// Store. Handlers translate HTTP requests into service calls and map the
// sentinel errors below onto status codes; the services themselves are
// transport-agnostic.
package service

import "errors"

var (
	// ErrNotFound signals that the target row is absent, or that the
	// caller has no rights over it. For owned resources (ratings,
	// reviews) the two cases are deliberately indistinguishable so that
	// existence of other users' records is never leaked.
	ErrNotFound = errors.New("resource does not exist")

	// ErrEmailTaken is returned by signup when the email is in use.
	ErrEmailTaken = errors.New("email is already taken")

	// ErrRatingExists rejects a second standalone rating by the same
	// user on the same movie.
	ErrRatingExists = errors.New("you cant score multiple times")

	// ErrReviewExists rejects a second review by the same user on the
	// same movie; the existing one must be updated instead.
	ErrReviewExists = errors.New("you cant write a review multiple times, but you can change the current one")

	// ErrInvalidCredentials is returned by login on a bad email or
	// password. The two cases share one message on purpose.
	ErrInvalidCredentials = errors.New("incorrect username or password")
)
