package service

import "github.com/nepal-egov/polling-backend/internal/models"

// Actor identifies the caller of a service operation. It is resolved from
// the request token by the HTTP layer and passed in explicitly, so
// authorization is testable without a router.
type Actor struct {
	UserID uint
	Role   models.Role
}

// Anonymous is the actor for unauthenticated requests.
var Anonymous = Actor{}

func (a Actor) Authenticated() bool {
	return a.UserID != 0
}

func (a Actor) IsAdmin() bool {
	return a.Authenticated() && a.Role == models.RoleAdmin
}
