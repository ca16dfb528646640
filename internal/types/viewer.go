package types

import "github.com/jobdesk-dev/jobdesk/internal/models"

// ViewerRole is the closed set of identities a request can act as.
// It is resolved once per request by the auth middleware instead of
// re-reading the role relation in every handler.
type ViewerRole int

const (
	RoleAnonymous ViewerRole = iota
	RoleApplicant
	RoleEmployer
)

func (r ViewerRole) String() string {
	switch r {
	case RoleApplicant:
		return "applicant"
	case RoleEmployer:
		return "employer"
	default:
		return "anonymous"
	}
}

// Viewer is the session principal handlers authorize against. CompanyID
// is non-nil only for employers.
type Viewer struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      ViewerRole `json:"-"`
	CompanyID *uint      `json:"company_id,omitempty"`
}

// ResolveViewerRole maps the seeded role names onto the enum. A user
// without a role row browses as anonymous.
func ResolveViewerRole(role *models.Role) ViewerRole {
	if role == nil {
		return RoleAnonymous
	}

	switch role.Name {
	case models.RoleNameHire:
		return RoleEmployer
	case models.RoleNameApplicant:
		return RoleApplicant
	default:
		return RoleAnonymous
	}
}
