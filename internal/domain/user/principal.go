package user

import "strings"

// Role is the marketplace role carried in the bearer token.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleClubManager Role = "clubManager"
	RoleAgent       Role = "agent"
	RoleScout       Role = "scout"
	RolePlayer      Role = "player"
)

func ParseRole(raw string) (Role, bool) {
	switch Role(strings.TrimSpace(raw)) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleClubManager:
		return RoleClubManager, true
	case RoleAgent:
		return RoleAgent, true
	case RoleScout:
		return RoleScout, true
	case RolePlayer:
		return RolePlayer, true
	default:
		return "", false
	}
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

func (p Principal) HasRole(roles ...Role) bool {
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}
