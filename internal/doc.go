// Package internal documents the worklog server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, and routing
// - domain: business logic and domain models
// - storage: database access and repositories (Postgres)
// - jobs: background workers and queues
// - config, email, metrics, sanitize: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
