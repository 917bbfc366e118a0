// Package store defines the persistence interfaces for the taskboard
// application along with the sentinel errors shared by all store
// implementations. Concrete implementations live under
// internal/platform (e.g. postgres).
package store
