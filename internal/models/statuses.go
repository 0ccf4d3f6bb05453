package models

type UserRole string
type PropositionState string

const (
	UserRoleMember UserRole = "member"
	UserRoleAdmin  UserRole = "admin"

	// State is monotonic: pending -> accepted or pending -> rejected.
	PropositionStatePending  PropositionState = "pending"
	PropositionStateAccepted PropositionState = "accepted"
	PropositionStateRejected PropositionState = "rejected"
)
