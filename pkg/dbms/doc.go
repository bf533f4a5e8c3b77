// Package dbms implements a minimal schema-validated tabular store: a
// database of named tables, each with a fixed column schema of typed
// fields, holding rows that must conform to that schema.
//
// The package is fully synchronous and performs no locking. A caller
// that shares a Database or Table across goroutines is responsible for
// serializing access.
package dbms
