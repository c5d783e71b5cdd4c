//go:build !debug

// internal/config/debug_off.go
package config

// Debug enables fail-fast invariant checks.
const Debug = false
