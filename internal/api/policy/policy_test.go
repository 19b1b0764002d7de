package policy

import (
	"studio/internal/api/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

var allCapabilities = []Capability{
	ManageUsers, ManageClients, ManageJobs, ViewJobs,
	ManagePayments, ViewFiles, ViewAttendance,
}

func TestCheck_Admin(t *testing.T) {
	for _, c := range allCapabilities {
		assert.True(t, Check(models.RoleAdmin, c), "admin should have %s", c)
	}
}

func TestCheck_FrontOfficeRoles(t *testing.T) {
	for _, role := range []models.AppRole{models.RoleReceptionist, models.RoleManager} {
		assert.False(t, Check(role, ManageUsers), "%s must not manage users", role)
		assert.True(t, Check(role, ManageClients))
		assert.True(t, Check(role, ManageJobs))
		assert.True(t, Check(role, ViewJobs))
		assert.True(t, Check(role, ManagePayments))
		assert.True(t, Check(role, ViewFiles))
		assert.True(t, Check(role, ViewAttendance))
	}
}

func TestCheck_ProductionRoles(t *testing.T) {
	roles := []models.AppRole{
		models.RolePhotographer, models.RoleDesigner,
		models.RoleEditor, models.RoleAdsManager,
	}
	for _, role := range roles {
		assert.True(t, Check(role, ViewJobs))
		assert.True(t, Check(role, ViewFiles))
		assert.True(t, Check(role, ViewAttendance))
		assert.False(t, Check(role, ManageUsers))
		assert.False(t, Check(role, ManageClients))
		assert.False(t, Check(role, ManageJobs))
		assert.False(t, Check(role, ManagePayments))
	}
}

func TestCheck_ClientHasNoCapabilities(t *testing.T) {
	for _, c := range allCapabilities {
		assert.False(t, Check(models.RoleClient, c), "client should not have %s", c)
	}
}

func TestCheck_UnknownRoleDeniesAll(t *testing.T) {
	for _, role := range []models.AppRole{"", "superuser", "ADMIN", "intern"} {
		for _, c := range allCapabilities {
			assert.False(t, Check(role, c), "unknown role %q should not have %s", role, c)
		}
	}
}

func TestCapabilitiesFor(t *testing.T) {
	assert.Len(t, CapabilitiesFor(models.RoleAdmin), len(allCapabilities))
	assert.Len(t, CapabilitiesFor(models.RoleManager), 6)
	assert.Len(t, CapabilitiesFor(models.RolePhotographer), 3)
	assert.Nil(t, CapabilitiesFor(models.RoleClient))
	assert.Nil(t, CapabilitiesFor("unknown"))
}
