// Package parallel provides the fork/join primitives used by the search and
// sort kernels: Do runs a set of thunks on their own goroutines behind a
// wait-group barrier, and ErrorCollector records the first error reported by
// any of them.
package parallel
