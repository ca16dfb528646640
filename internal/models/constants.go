package models

// Seeded role rows. The IDs are part of the data contract: registration
// always assigns RoleIDApplicant.
const (
	RoleIDHire      uint = 1
	RoleIDApplicant uint = 2

	RoleNameHire      = "Hire"
	RoleNameApplicant = "Applicant"
)
