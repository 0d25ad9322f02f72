package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Magic group names seeded by migrations.
const (
	AllUsersGroupName = "All Users"
	AdminGroupName    = "Administrators"
)

// PermissionsGroup is a named set of users that permissions are granted to.
type PermissionsGroup struct {
	bun.BaseModel `bun:"table:permissions_group,alias:pg"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,notnull,unique"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// PermissionsGroupMembership is the edge between a user and a group.
// (user_id, group_id) is unique.
type PermissionsGroupMembership struct {
	bun.BaseModel `bun:"table:permissions_group_membership,alias:pgm"`

	ID             int64 `bun:"id,pk,autoincrement"`
	UserID         int64 `bun:"user_id,notnull,unique:uq_membership_user_group"`
	GroupID        int64 `bun:"group_id,notnull,unique:uq_membership_user_group"`
	IsGroupManager bool  `bun:"is_group_manager,notnull,default:false"`
}

// Permission grants an object path (e.g. "/collection/12/") to a group.
type Permission struct {
	bun.BaseModel `bun:"table:permissions,alias:p"`

	ID      int64  `bun:"id,pk,autoincrement"`
	GroupID int64  `bun:"group_id,notnull,unique:uq_permissions_group_object"`
	Object  string `bun:"object,notnull,unique:uq_permissions_group_object"`
}
