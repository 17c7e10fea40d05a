package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesFor(t *testing.T) {
	tests := []struct {
		role           Role
		placeOwnOrders bool
		manageOrders   bool
		manageProducts bool
		manageUsers    bool
	}{
		{RoleAdmin, false, true, true, true},
		{RoleEmployee, false, true, true, true},
		{RoleCustomer, true, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			caps := CapabilitiesFor(tt.role)
			assert.Equal(t, tt.placeOwnOrders, caps.PlaceOwnOrders)
			assert.Equal(t, tt.manageOrders, caps.ManageOrders)
			assert.Equal(t, tt.manageProducts, caps.ManageProducts)
			assert.Equal(t, tt.manageUsers, caps.ManageUsers)
		})
	}
}

func TestCapabilities_MayAssign(t *testing.T) {
	admin := CapabilitiesFor(RoleAdmin)
	assert.True(t, admin.MayAssign(RoleAdmin))
	assert.True(t, admin.MayAssign(RoleEmployee))
	assert.True(t, admin.MayAssign(RoleCustomer))

	employee := CapabilitiesFor(RoleEmployee)
	assert.False(t, employee.MayAssign(RoleAdmin))
	assert.False(t, employee.MayAssign(RoleEmployee))
	assert.True(t, employee.MayAssign(RoleCustomer))

	customer := CapabilitiesFor(RoleCustomer)
	assert.False(t, customer.MayAssign(RoleCustomer))
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("employee")
	assert.NoError(t, err)
	assert.Equal(t, RoleEmployee, role)

	_, err = ParseRole("superuser")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestRole_IsStaff(t *testing.T) {
	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleEmployee.IsStaff())
	assert.False(t, RoleCustomer.IsStaff())
}
