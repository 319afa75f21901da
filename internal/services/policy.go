package services

import (
	"fmt"

	"carrental/internal/models"
)

// Action names an operation gated by the authorization policy.
type Action string

const (
	ActionListCars    Action = "cars:list"
	ActionGetCar      Action = "cars:get"
	ActionCreateCar   Action = "cars:create"
	ActionDeleteCar   Action = "cars:delete"
	ActionRentCar     Action = "cars:rent"
	ActionListRentals Action = "rentals:list"
	ActionGetRental   Action = "rentals:get"
)

// rolesFor maps each action to the roles allowed to perform it.
// A nil entry means the action is open, including to anonymous callers.
var rolesFor = map[Action][]models.Role{
	ActionListCars:    nil,
	ActionGetCar:      nil,
	ActionCreateCar:   {models.RoleAdmin},
	ActionDeleteCar:   {models.RoleAdmin},
	ActionRentCar:     {models.RoleCustomer},
	ActionListRentals: {models.RoleAdmin, models.RoleCustomer},
	ActionGetRental:   {models.RoleAdmin, models.RoleCustomer},
}

// Authorize permits or denies action for the given claims.
// It returns ErrUnauthenticated when claims are nil on a protected action
// and ErrForbidden when the role does not match.
func Authorize(claims *models.UserClaims, action Action) error {
	roles, known := rolesFor[action]
	if !known {
		return fmt.Errorf("unknown action %q: %w", action, ErrForbidden)
	}
	if roles == nil {
		return nil
	}
	if claims == nil {
		return ErrUnauthenticated
	}
	if !claims.HasRole(roles...) {
		return fmt.Errorf("role %s may not perform %s: %w", claims.Role, action, ErrForbidden)
	}
	return nil
}
