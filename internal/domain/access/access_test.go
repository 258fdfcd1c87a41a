package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/almazgeobur/etp-api/internal/domain/entity"
)

func TestIsStaff(t *testing.T) {
	assert.True(t, IsStaff(entity.RoleAdmin))
	assert.True(t, IsStaff(entity.RoleContractManager))
	assert.True(t, IsStaff(entity.RoleManager))
	assert.False(t, IsStaff(entity.RoleSupplier))
	assert.False(t, IsStaff(""))
}

func TestCanManageTenders(t *testing.T) {
	assert.True(t, CanManageTenders(entity.RoleAdmin))
	assert.True(t, CanManageTenders(entity.RoleContractManager))
	assert.False(t, CanManageTenders(entity.RoleManager), "managers observe, they do not manage tenders")
	assert.False(t, CanManageTenders(entity.RoleSupplier))
}

func TestCanEditTender(t *testing.T) {
	assert.True(t, CanEditTender(entity.RoleAdmin, 1, 2), "admin edits any tender")
	assert.True(t, CanEditTender(entity.RoleContractManager, 5, 5), "contract_manager edits own tenders")
	assert.False(t, CanEditTender(entity.RoleContractManager, 5, 6), "contract_manager cannot edit foreign tenders")
	assert.False(t, CanEditTender(entity.RoleManager, 5, 5))
}

func TestCanViewApplication(t *testing.T) {
	const supplier, creator = int64(10), int64(20)

	assert.True(t, CanViewApplication(entity.RoleAdmin, 1, supplier, creator))
	assert.True(t, CanViewApplication(entity.RoleManager, 1, supplier, creator))
	assert.True(t, CanViewApplication(entity.RoleContractManager, creator, supplier, creator))
	assert.False(t, CanViewApplication(entity.RoleContractManager, 99, supplier, creator),
		"contract_manager sees applications on own tenders only")
	assert.True(t, CanViewApplication(entity.RoleSupplier, supplier, supplier, creator))
	assert.False(t, CanViewApplication(entity.RoleSupplier, 99, supplier, creator),
		"supplier sees own applications only")
	assert.False(t, CanViewApplication("", 1, supplier, creator))
}

func TestCanViewSupplierProfile(t *testing.T) {
	assert.True(t, CanViewSupplierProfile(entity.RoleAdmin, 1, 2))
	assert.True(t, CanViewSupplierProfile(entity.RoleSupplier, 7, 7))
	assert.False(t, CanViewSupplierProfile(entity.RoleSupplier, 7, 8))
	assert.False(t, CanViewSupplierProfile(entity.RoleManager, 7, 8))
}

func TestCanManageFiles(t *testing.T) {
	assert.True(t, CanManageFiles(entity.RoleAdmin))
	assert.True(t, CanManageFiles(entity.RoleManager))
	assert.False(t, CanManageFiles(entity.RoleContractManager))
	assert.False(t, CanManageFiles(entity.RoleSupplier))
}
