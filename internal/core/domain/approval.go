package domain

// InitialApproval returns the loginApproved flag for an account of kind
// created by creator. A zero creator means self-registration.
//
//	self-registered user       -> pending
//	anything made by a superior -> approved
//	clients, super admin        -> always approved
func InitialApproval(kind AccountKind, creator Role) bool {
	switch kind {
	case KindClient:
		return true
	case KindUser:
		return creator != ""
	case KindAdmin:
		return true
	}
	return false
}

// CanLogin applies both login axes to an account: it must be active, and it
// must be approved unless it is the super admin.
func CanLogin(a Account) error {
	if !a.Active() {
		return ErrLoginInactive
	}
	if a.AccountRole() == RoleSuperAdmin {
		return nil
	}
	if !a.Approved() {
		return ErrLoginNotApproved
	}
	return nil
}

// ApprovalTarget validates that kind may go through approve/reject at all.
func ApprovalTarget(kind AccountKind) error {
	switch kind {
	case KindAdmin, KindUser:
		return nil
	case KindClient:
		return ErrClientNoApproval
	}
	return ErrInvalidAccountType
}
