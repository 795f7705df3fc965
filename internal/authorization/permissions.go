// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"slices"

	"github.com/canonical/content-platform/internal/types"
)

type Permission string

const (
	PermissionAll           Permission = "all"
	PermissionManageMembers Permission = "manage_members"
	PermissionManageContent Permission = "manage_content"
	PermissionViewAnalytics Permission = "view_analytics"
	PermissionViewContent   Permission = "view_content"
)

// rolePermissions is filled once at init and never written afterwards.
var rolePermissions = map[types.Role][]Permission{
	types.RoleOwner:  {PermissionAll},
	types.RoleAdmin:  {PermissionManageMembers, PermissionManageContent, PermissionViewAnalytics},
	types.RoleEditor: {PermissionManageContent},
	types.RoleViewer: {PermissionViewContent},
}

// HasPermission reports whether role grants perm according to the static
// role table. Unknown roles grant nothing.
func HasPermission(role types.Role, perm Permission) bool {
	granted, ok := rolePermissions[role]
	if !ok {
		return false
	}

	return slices.Contains(granted, PermissionAll) || slices.Contains(granted, perm)
}

// Permissions returns a copy of the permission set of role.
func Permissions(role types.Role) []Permission {
	return slices.Clone(rolePermissions[role])
}

// Roles lists the known roles from most to least privileged.
func Roles() []types.Role {
	return []types.Role{types.RoleOwner, types.RoleAdmin, types.RoleEditor, types.RoleViewer}
}

// ValidRole reports whether r names a known role.
func ValidRole(r string) bool {
	_, ok := rolePermissions[types.Role(r)]
	return ok
}

// contentAllowed applies the ownership refinement used for content access.
// An empty contentOwnerID means the item is not attributed to anyone yet.
func contentAllowed(role types.Role, perm Permission, callerID, contentOwnerID string) bool {
	switch role {
	case types.RoleOwner, types.RoleAdmin:
		return true
	case types.RoleEditor:
		switch perm {
		case PermissionViewContent:
			return true
		case PermissionManageContent:
			return contentOwnerID == "" || contentOwnerID == callerID
		}
	case types.RoleViewer:
		return perm == PermissionViewContent
	}

	return false
}
