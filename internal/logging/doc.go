// Package logging provides the logging interface used across parbench.
// Components depend on Logger rather than on a concrete backend; the default
// backend is zerolog, with a standard-library adapter for plain output.
package logging
