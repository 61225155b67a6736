// Package store defines the persistence gateway interfaces for Editoria.
//
// Each interface owns all reads and writes for one entity. Implementations
// live in the gorm subpackage; handlers depend only on these interfaces so
// tests can substitute mocks.
package store
