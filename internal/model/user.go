package model

import "time"

// User represents a row in the `users` table. A user owns zero or
// more movies; deleting a user removes every movie they own. The
// structs in this package mirror database columns and are used by the
// repository layer; handlers define their own response types with
// JSON tags where the wire shape differs.
//
// Fields:
//  ID        – primary key identifier of the user.
//  Name      – display name, never empty.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type User struct {
	ID        uint64    // users.id
	Name      string    // users.name
	CreatedAt time.Time // users.created_at
	UpdatedAt time.Time // users.updated_at
}
