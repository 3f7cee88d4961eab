// Package portfolio holds the candidate profile and project catalog the
// server-side tools read from. The in-memory store is the collaborator
// boundary for durable portfolio data.
package portfolio
