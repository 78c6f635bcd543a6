// Package rbac keeps the privileged operations behind an explicit role
// check. Callers pass the role from a verified session token, never from
// request payloads.
package rbac

type Role string
type Action string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

const (
	ActionPost            Action = "post"
	ActionComment         Action = "comment"
	ActionMessage         Action = "message"
	ActionCreateEvent     Action = "create_event"
	ActionModerate        Action = "moderate"
	ActionManageDirectory Action = "manage_directory"
)

func Can(role Role, action Action) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleEmployee:
		return action == ActionPost || action == ActionComment ||
			action == ActionMessage || action == ActionCreateEvent
	default:
		return false
	}
}

func Normalize(role string) Role {
	switch Role(role) {
	case RoleAdmin, RoleEmployee:
		return Role(role)
	default:
		return RoleEmployee
	}
}
