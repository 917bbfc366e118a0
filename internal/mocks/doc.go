// Package mocks provides hand-rolled mock implementations of the store
// interfaces for testing. Each mock carries optional function fields to
// override specific calls plus a small in-memory default implementation
// backed by maps.
package mocks
