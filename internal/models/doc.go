// Package models defines the core domain models for the race registration
// system.
//
// # Models
//
//   - Account: a registered racer (unique email, division, disciplines)
//   - Event: an upcoming race, owned by the account that created it
//   - Registration: the ledger row pairing an account with an event,
//     carrying the bib number assigned at sign-up
//   - ChatMessage / Document: supporting records for the Q&A assistant
//
// # Design Principles
//
//  1. **Typed boundaries**: create/update inputs are explicit parameter
//     structs validated once, not loose field lists.
//  2. **Nullable means pointer**: optional columns surface as pointers,
//     never as empty strings.
//  3. **Avoid circular references**: rows reference each other by int64
//     ids, not embedded structs.
//
// Event.CompetitorCount is a denormalized cache of the ledger count; the
// storage layer recomputes it inside the same transaction as every ledger
// mutation.
package models
