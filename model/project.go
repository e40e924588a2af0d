// api/model/project.go
package model

import "time"

// Project roles, ordered from most to least privileged.
const (
	RoleOwner  = "owner"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// roleRank maps a role to its privilege level. Unknown roles rank below viewer.
var roleRank = map[string]int{
	RoleOwner:  3,
	RoleEditor: 2,
	RoleViewer: 1,
}

// IsValidRole reports whether role is one of the known project roles.
func IsValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

// RoleAtLeast reports whether role grants at least the privileges of required.
func RoleAtLeast(role, required string) bool {
	return roleRank[role] >= roleRank[required]
}

type Project struct {
	ID         string    `json:"id"`
	Name       string    `json:"name" binding:"required"`
	Slug       string    `json:"slug" binding:"required"`
	ClientName string    `json:"client_name"`
	OwnerID    string    `json:"owner_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ProjectMember struct {
	UserID    string    `json:"user_id" binding:"required"`
	ProjectID string    `json:"project_id"`
	Role      string    `json:"role" binding:"required,oneof=owner editor viewer"`
	AddedAt   time.Time `json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
