package logic

import "github.com/buildhub-lab/buildhub/dao/model"

// Actor is the per-request acting user, passed explicitly into every
// operation instead of being read from ambient request state. Teams is
// the list of team names the actor's session carries; it may be empty.
type Actor struct {
	ID    uint
	Name  string
	Role  model.Role
	Teams []string
}

// IsAdmin reports whether the actor holds the platform admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}
