package model

// Staff roles as assigned by the backend.
const (
	RolePartner   = "PARTNER"
	RoleManager   = "MANAGER"
	RoleAssociate = "ASSOCIATE"
	RoleClient    = "CLIENT"
)

// StaffMember is a firm user record. Deactivation is a soft delete
// server-side; the record stays listed with IsActive false.
type StaffMember struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// DisplayName returns the best human-readable name for the member.
func (s StaffMember) DisplayName() string {
	if s.FirstName == "" && s.LastName == "" {
		return s.Username
	}
	if s.FirstName == "" {
		return s.LastName
	}
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
