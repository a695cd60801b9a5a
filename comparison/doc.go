// Package comparison is the catalog of comparison operators understood by the
// compiler, their wire tokens, and the phases each may appear in.
package comparison
