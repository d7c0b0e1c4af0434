// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL or SQLite connections based on the application's
// configuration. SQLite is primarily used for local development and tests
// (":memory:"); production deployments run against MySQL.
//
// # Connect
//
// The Connect function establishes a connection, configures the pool and
// verifies it with a ping before returning.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
