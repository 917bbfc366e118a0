// Package postgres provides PostgreSQL implementations of the store
// interfaces, built on database/sql with the pgx stdlib driver.
// Schema migrations live under migrations/ and are applied with goose.
package postgres
