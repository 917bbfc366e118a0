// Package service provides application-level services for managing
// tasks and user accounts. Every operation takes the resolved caller
// identity as its first argument after the context, runs the
// authorization rules from internal/service/authz against the fetched
// record, and only then touches the store.
package service
