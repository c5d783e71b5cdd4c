//go:build debug

// internal/config/debug_on.go
package config

// Debug enables fail-fast invariant checks.
const Debug = true
