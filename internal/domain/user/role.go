package user

// Role is the acting user's role as carried in the access-token claims.
// Token issuance belongs to the external auth system; this package only
// interprets the claim.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// CanApprove reports whether the role sits in the approver set for late
// applications. Self-approval is rejected separately by employee-id
// comparison, never by role alone.
func CanApprove(role Role) bool {
	switch role {
	case RoleAdmin, RoleHR, RoleManager:
		return true
	default:
		return false
	}
}
