package constants

const (
	RoleAdmin     = "admin"
	RoleOrganizer = "organizer"
	RoleUser      = "user"
)

// AllowedRoles: role yang boleh mengakses fitur user biasa
var AllowedRoles = []string{RoleAdmin, RoleOrganizer, RoleUser}

// OrganizerRoles: role yang boleh mengelola kehadiran event
var OrganizerRoles = []string{RoleAdmin, RoleOrganizer}
