// Package accessgate resolves caller identity into an access tier and
// enforces reflink budgets.
//
// Invariants:
// - Access levels form an ordered scale: basic < limited < premium.
// - A caller without a reflink resolves to basic access.
// - An invalid, expired, or budget-exhausted reflink rejects the whole call.
// - The gate never deducts budget; deduction happens through a UsageTracker.
package accessgate
