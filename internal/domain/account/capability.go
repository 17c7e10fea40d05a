package account

// Capabilities is the explicit permission set of a role. Workflows resolve it
// once at their entry point instead of re-checking the role inline.
type Capabilities struct {
	PlaceOwnOrders bool
	ManageOrders   bool
	ManageProducts bool
	ManageUsers    bool

	// CreatableRoles lists the roles this principal may assign when creating
	// or editing an account. Empty means no account management at all.
	CreatableRoles []Role

	// ManageStaffAccounts allows editing and deleting admin/employee users.
	ManageStaffAccounts bool

	// ChangeOwnRole allows a principal to change its own role.
	ChangeOwnRole bool
}

// CapabilitiesFor resolves the permission set of a role.
func CapabilitiesFor(role Role) Capabilities {
	switch role {
	case RoleAdmin:
		return Capabilities{
			ManageOrders:        true,
			ManageProducts:      true,
			ManageUsers:         true,
			CreatableRoles:      []Role{RoleAdmin, RoleEmployee, RoleCustomer},
			ManageStaffAccounts: true,
			ChangeOwnRole:       true,
		}
	case RoleEmployee:
		return Capabilities{
			ManageOrders:   true,
			ManageProducts: true,
			ManageUsers:    true,
			CreatableRoles: []Role{RoleCustomer},
		}
	case RoleCustomer:
		return Capabilities{
			PlaceOwnOrders: true,
		}
	}
	return Capabilities{}
}

// MayAssign reports whether the capability set allows handing out the role.
func (c Capabilities) MayAssign(role Role) bool {
	for _, r := range c.CreatableRoles {
		if r == role {
			return true
		}
	}
	return false
}
