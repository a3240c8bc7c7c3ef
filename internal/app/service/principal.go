package service

import (
	"errors"

	"github.com/ikkim/furniture-backend/internal/app/model"
)

var ErrForbidden = errors.New("forbidden")

// Principal is the authenticated caller. Handlers build it from the verified
// token and pass it into every service call that depends on identity.
type Principal struct {
	UserID uint
	Email  string
	Role   model.UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == model.RoleAdmin
}

// Owns reports whether the caller may act on a record owned by ownerID.
func (p Principal) Owns(ownerID uint) bool {
	return p.IsAdmin() || p.UserID == ownerID
}
