// Package domain defines the core business entities of the taskboard
// application: users with their roles, and the tasks assigned to them.
// It contains entity validation and domain-level error values, but no
// persistence or transport concerns.
package domain
