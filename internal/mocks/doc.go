// Package mocks provides in-memory fakes of the service dependencies for tests.
//
// The stores keep rows in maps and reproduce the database's observable
// behaviour: generated ids, unique and foreign key violations as
// *pgconn.PgError, and tagged no-rows errors for missing ids.
package mocks
