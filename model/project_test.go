// api/model/project_test.go
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleOrdering(t *testing.T) {
	assert.True(t, RoleAtLeast(RoleOwner, RoleViewer))
	assert.True(t, RoleAtLeast(RoleOwner, RoleOwner))
	assert.True(t, RoleAtLeast(RoleEditor, RoleViewer))
	assert.False(t, RoleAtLeast(RoleViewer, RoleEditor))
	assert.False(t, RoleAtLeast(RoleEditor, RoleOwner))
	assert.False(t, RoleAtLeast("admin", RoleViewer), "unknown roles grant nothing")
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleOwner))
	assert.True(t, IsValidRole(RoleEditor))
	assert.True(t, IsValidRole(RoleViewer))
	assert.False(t, IsValidRole("admin"))
	assert.False(t, IsValidRole(""))
}
