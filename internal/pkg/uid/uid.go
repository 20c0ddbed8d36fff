// Package uid generates unique identifiers. NumberID produces sortable
// numeric IDs for database rows; StringID produces opaque string IDs for
// tokens and correlation values.
package uid

// NumberID generates unique numeric identifiers.
type NumberID interface {
	Generate() uint64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
