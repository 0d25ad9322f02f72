// Package users manages account lifecycle and group membership.
//
// The service owns the invariant-preserving mutations around a user record:
//
//   - Credentials are salted and hashed before any write; a plaintext secret is never stored.
//   - Every user belongs to the All Users group from creation onward.
//   - is_superuser and membership in the Administrators group move together,
//     in the same transaction, whichever side is edited.
//   - Group membership changes are applied as a minimal diff, all-or-nothing.
//
// Reads are split in two: PermissionSet derives the object paths a user can
// reach (personal collection tree plus group grants), and Hydrate attaches
// membership-derived fields to an already loaded batch of users with a
// bounded number of queries.
//
// Create and Update run a fixed pipeline:
//
//	checkCredentialInput → validate → applyDefaults → normalize → persist (tx) → postCommit
//
// Welcome and admin-joined notifications are sent after commit and never roll
// back a created user; their failure is reported on CreateResult.NotifyErr.
package users
