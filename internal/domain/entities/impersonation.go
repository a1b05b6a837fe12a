package entities

// ImpersonationKind identifies which identity a privileged session acts as.
type ImpersonationKind string

const (
	ImpersonationNone     ImpersonationKind = ""
	ImpersonationCustomer ImpersonationKind = "customer"
	ImpersonationLab      ImpersonationKind = "lab"
)

// ImpersonatedUser is the session-scoped identity a privileged operator acts as.
// It is never persisted alongside quotes.
type ImpersonatedUser struct {
	Kind  ImpersonationKind `json:"kind"`
	ID    string            `json:"id"`
	Email string            `json:"email,omitempty"`
	Name  string            `json:"name,omitempty"`
	Role  string            `json:"role,omitempty"`
}

// Active reports whether an impersonation is in effect.
func (u ImpersonatedUser) Active() bool {
	return u.Kind != ImpersonationNone && u.ID != ""
}
