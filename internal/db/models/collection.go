package models

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// RootLocation is the location of top-level collections.
const RootLocation = "/"

// Collection is a namespace. Location is the materialized path of ancestor
// ids, e.g. "/4/9/" for a collection nested under 4 and then 9.
// A collection with PersonalOwnerID set is that user's personal namespace.
type Collection struct {
	bun.BaseModel `bun:"table:collection,alias:c"`

	ID              int64     `bun:"id,pk,autoincrement"`
	Name            string    `bun:"name,notnull"`
	Location        string    `bun:"location,notnull,default:'/'"`
	PersonalOwnerID *int64    `bun:"personal_owner_id,unique"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// ChildLocation returns the location of collections nested directly in c.
func (c *Collection) ChildLocation() string {
	return fmt.Sprintf("%s%d/", c.Location, c.ID)
}

// CollectionPermissionPath is the read-write permission path for a collection.
func CollectionPermissionPath(collectionID int64) string {
	return fmt.Sprintf("/collection/%d/", collectionID)
}
