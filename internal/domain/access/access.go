// Package access centralizes the role/ownership decisions used by the HTTP
// layer and the use cases. Denial here surfaces as domain.ErrForbidden,
// distinct from not-found.
package access

import "github.com/almazgeobur/etp-api/internal/domain/entity"

// IsStaff reports whether the role belongs to the back-office side
// (admin, contract_manager, manager).
func IsStaff(role string) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleContractManager, entity.RoleManager:
		return true
	}
	return false
}

// CanManageTenders reports whether the role may create, update or publish
// tenders and import/export tender data.
func CanManageTenders(role string) bool {
	return role == entity.RoleAdmin || role == entity.RoleContractManager
}

// CanEditTender applies the ownership rule: admins act on any tender,
// a contract_manager only on tenders they created.
func CanEditTender(role string, userID, createdBy int64) bool {
	if role == entity.RoleAdmin {
		return true
	}
	return role == entity.RoleContractManager && userID == createdBy
}

// CanViewApplication reports whether the caller may read an application:
// the owning supplier, the tender's contract_manager, or admin/manager.
func CanViewApplication(role string, userID, supplierID, tenderCreatedBy int64) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleManager:
		return true
	case entity.RoleContractManager:
		return userID == tenderCreatedBy
	case entity.RoleSupplier:
		return userID == supplierID
	}
	return false
}

// CanViewSupplierProfile reports whether the caller may read or update a
// supplier profile: the owner or an admin.
func CanViewSupplierProfile(role string, userID, profileOwnerID int64) bool {
	return role == entity.RoleAdmin || userID == profileOwnerID
}

// CanManageFiles reports whether the role may list or delete uploaded files.
func CanManageFiles(role string) bool {
	return role == entity.RoleAdmin || role == entity.RoleManager
}
