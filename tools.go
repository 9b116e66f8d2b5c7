//go:build tools
// +build tools

package tools

// Tool dependencies tracked in go.mod. They are built with `go run`, never
// imported by the application.

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/pressly/goose/v3/cmd/goose"
)
