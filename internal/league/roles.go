package league

import "fmt"

// RoleFromCode derives a player's role from its code range: codes below 200
// are goalkeepers, below 500 defenders, below 800 midfielders and everything
// from 800 up forwards.
func RoleFromCode(code int) (Role, error) {
	switch {
	case code < 0:
		return "", fmt.Errorf("%w: negative player code %d", ErrInvalidArgument, code)
	case code < 200:
		return RoleGoalkeeper, nil
	case code < 500:
		return RoleDefender, nil
	case code < 800:
		return RoleMidfielder, nil
	default:
		return RoleForward, nil
	}
}

// ParseRole validates a role string coming from user input.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleGoalkeeper, RoleDefender, RoleMidfielder, RoleForward:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidArgument, s)
}
