// Package account provides the caller identity primitives consumed by the
// core. The session gate (an external collaborator) authenticates a request
// and produces an Actor; the core only ever sees the resulting identity/role
// pair and never touches credentials.
package account
