// Package policy is the single source of truth for what each role may do.
// Every handler and middleware consults Check; role comparisons are never
// reimplemented at call sites.
package policy

import "studio/internal/api/models"

// Capability names one action class that can be granted to a role.
type Capability string

const (
	ManageUsers    Capability = "manage_users"
	ManageClients  Capability = "manage_clients"
	ManageJobs     Capability = "manage_jobs"
	ViewJobs       Capability = "view_jobs"
	ManagePayments Capability = "manage_payments"
	ViewFiles      Capability = "view_files"
	ViewAttendance Capability = "view_attendance"
)

// capabilities is the fixed role → capability table. Defined once, never
// mutated at runtime. Roles absent from the table (including the client
// role and unknown values) have no capabilities.
var capabilities = map[models.AppRole]map[Capability]bool{
	models.RoleAdmin: {
		ManageUsers:    true,
		ManageClients:  true,
		ManageJobs:     true,
		ViewJobs:       true,
		ManagePayments: true,
		ViewFiles:      true,
		ViewAttendance: true,
	},
	models.RoleReceptionist: staffCapabilities(),
	models.RoleManager:      staffCapabilities(),
	models.RolePhotographer: productionCapabilities(),
	models.RoleDesigner:     productionCapabilities(),
	models.RoleEditor:       productionCapabilities(),
	models.RoleAdsManager:   productionCapabilities(),
}

func staffCapabilities() map[Capability]bool {
	return map[Capability]bool{
		ManageClients:  true,
		ManageJobs:     true,
		ViewJobs:       true,
		ManagePayments: true,
		ViewFiles:      true,
		ViewAttendance: true,
	}
}

func productionCapabilities() map[Capability]bool {
	return map[Capability]bool{
		ViewJobs:       true,
		ViewFiles:      true,
		ViewAttendance: true,
	}
}

// Check reports whether the role is granted the capability. Unknown roles
// deny everything; the check is pure and never fails.
func Check(role models.AppRole, capability Capability) bool {
	set, ok := capabilities[role]
	if !ok {
		return false
	}
	return set[capability]
}

// CapabilitiesFor returns the capability set of a role, for the /me endpoint
// so the UI can gate actions from the same table as the API.
func CapabilitiesFor(role models.AppRole) []Capability {
	set, ok := capabilities[role]
	if !ok {
		return nil
	}
	all := []Capability{ManageUsers, ManageClients, ManageJobs, ViewJobs, ManagePayments, ViewFiles, ViewAttendance}
	var granted []Capability
	for _, c := range all {
		if set[c] {
			granted = append(granted, c)
		}
	}
	return granted
}
