// Package models defines the core domain models for the gift exchange.
//
// # Models
//
//   - Group: a named set of participants sharing an invite code
//   - Membership: links a user email to a group, with a free-text role
//   - WishlistItem: a gift wish owned by one user
//   - Identity: the signed-in user
//   - Dataset: the three collections together, in insertion order
//
// # Design Principles
//
// 1. **Flat records**: every field is a string so imported CSV values round-trip verbatim
// 2. **String keys**: relationships use ids and emails, never pointers
// 3. **Append-only**: records are created, never updated or removed
//
// Users are identified by email. There is no user table; an email appearing in
// a membership row or as an item owner is enough.
package models
