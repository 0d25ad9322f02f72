package bunx

import "github.com/google/uuid"

// NewUUIDv7 generates a time-ordered UUIDv7 string for string primary keys
// such as session ids.
//
// Panics if the entropy source fails; no id can be generated safely then.
func NewUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}
