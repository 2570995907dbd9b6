package domain

import "errors"

var ErrCityNotFound = errors.New("city not found")

// City is the demo CRUD resource. It lives in an in-memory store and
// carries no relations to the rest of the domain.
type City struct {
	ID         string
	Name       string
	Population int64
}
