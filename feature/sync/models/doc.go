// Package models defines the persistent entities of the fleet store and
// the transient batch result returned by the sync endpoint.
//
// Agents are upserted by their unique name; executions and notifications
// are create-only; tasks are created without an id and updated through it.
// See the sync feature package for the reconciliation rules.
package models
