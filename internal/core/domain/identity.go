package domain

// Role is the authorisation role carried by an Identity.
type Role string

const (
	RoleCitizen Role = "CITIZEN"
	// RoleOfficer is the Grievance Redressal Officer.
	RoleOfficer Role = "GRO"
)

const (
	CitizenDisplayName = "Citizen User"

	OfficerID          = "admin"
	OfficerDisplayName = "Nodal Officer"
	OfficerMobile      = "9999999999"
)

// Identity is an authenticated user session value. It is immutable for the
// lifetime of the session.
type Identity struct {
	ID           string `json:"id"`
	DisplayName  string `json:"name"`
	Role         Role   `json:"role"`
	MobileNumber string `json:"mobile"`
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCitizen || r == RoleOfficer
}

// NewCitizen builds the identity issued after a successful code verification.
func NewCitizen(mobile string) Identity {
	return Identity{
		ID:           mobile,
		DisplayName:  CitizenDisplayName,
		Role:         RoleCitizen,
		MobileNumber: mobile,
	}
}

// NewOfficer returns the fixed demo officer identity.
func NewOfficer() Identity {
	return Identity{
		ID:           OfficerID,
		DisplayName:  OfficerDisplayName,
		Role:         RoleOfficer,
		MobileNumber: OfficerMobile,
	}
}

// GrievanceKey is the partition key for the identity's grievance list.
func (i Identity) GrievanceKey() string {
	return i.MobileNumber
}
