// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
// Every method takes the database.DBTX to run on, so the caller decides
// whether the work happens inside a transaction.
package repository
