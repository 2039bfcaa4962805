//go:build cgo && !purego
// +build cgo,!purego

package store

// This file is compiled for CGO builds. It uses the mattn/go-sqlite3 driver,
// which is faster but requires a C compiler.
//
// Build command:
//   CGO_ENABLED=1 go build ./...
//
// Driver used: github.com/mattn/go-sqlite3

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	// DriverName is the SQLite driver to use
	DriverName = "sqlite3"

	// BuildMode describes the current build configuration
	BuildMode = "cgo"
)
