// Package models defines the core domain models for Splitledger.
//
// # Models
//
//   - User: a registered account, identified by a unique login and email
//   - Group: a named pool of participants sharing expenses, owned by one user
//   - Expense: a single recorded charge inside a group, with a payer and debtors
//   - Currency: the closed set of currencies a group can be denominated in
//
// # Design Principles
//
//  1. **No back-pointers**: entities reference each other by numeric ID only.
//     Relationship lookups (a group's participants, an expense's debtors) go
//     through the storage layer, never through embedded object graphs.
//  2. **Append-only**: users, groups, and expenses are created and grow;
//     nothing in this scope mutates or deletes them.
//  3. **Integer amounts**: expense amounts are whole currency units, so there
//     is no floating-point money anywhere in the model.
package models
