// Package config abstracts configuration lookup behind a small interface so
// components never depend on a concrete file format or library.
package config

import (
	"io"
	"time"
)

// Config reads typed configuration values by dotted key. Implementations
// return zero values for missing keys or failed conversions.
type Config interface {
	io.Closer

	// GetBool returns the value for key as a bool.
	GetBool(key string) bool

	// GetString returns the value for key as a string.
	GetString(key string) string

	// GetInt returns the value for key as an int.
	GetInt(key string) int

	// GetInt32 returns the value for key as an int32.
	GetInt32(key string) int32

	// GetInt64 returns the value for key as an int64.
	GetInt64(key string) int64

	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64

	// GetUint returns the value for key as a uint.
	GetUint(key string) uint

	// GetSecond returns the integer value for key as a duration in seconds.
	GetSecond(key string) time.Duration

	// GetMinute returns the integer value for key as a duration in minutes.
	GetMinute(key string) time.Duration

	// GetBinary returns the base64-encoded value for key as raw bytes.
	GetBinary(key string) []byte

	// GetArray returns the comma-separated value for key as a string slice.
	GetArray(key string) []string
}
