// Package status holds the approval lifecycle shared by stock items and
// checkout requests. A record starts pending and moves once to approved or
// rejected.
package status

const (
	Pending  = "pending"
	Approved = "approved"
	Rejected = "rejected"
)

// IsDecision reports whether s is a value an approver may resolve to.
func IsDecision(s string) bool {
	return s == Approved || s == Rejected
}

func IsTerminal(s string) bool {
	return IsDecision(s)
}
