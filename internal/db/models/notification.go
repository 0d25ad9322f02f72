package models

import (
	"time"

	"github.com/uptrace/bun"
)

// NotificationSubscription records that a user receives a scheduled notification.
type NotificationSubscription struct {
	bun.BaseModel `bun:"table:notification_subscription,alias:ns"`

	ID        int64     `bun:"id,pk,autoincrement"`
	UserID    int64     `bun:"user_id,notnull"`
	Channel   string    `bun:"channel,notnull"` // email, slack
	Target    string    `bun:"target,notnull"`  // subscribed notification identifier
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
