package domain

import (
	"time"
)

// Operation names a recognized class of rate-limited requests.
type Operation string

// Recognized operation classes.
const (
	// OperationAIChat covers assistant chat requests.
	OperationAIChat Operation = "aiChat"
	// OperationAuth covers authentication attempts.
	OperationAuth Operation = "auth"
	// OperationMCPAPI covers programmatic API requests.
	OperationMCPAPI Operation = "mcpApi"
	// OperationMutations covers all state-changing requests.
	OperationMutations Operation = "mutations"
)

// Config holds the limit parameters for one operation class.
type Config struct {
	// MaxRequests is the number of requests allowed per window.
	MaxRequests int
	// Window is the fixed window duration.
	Window time.Duration
}

// configs maps each recognized operation to its limits.
var configs = map[Operation]Config{
	OperationAIChat:    {MaxRequests: 20, Window: 60 * time.Second},
	OperationAuth:      {MaxRequests: 10, Window: 15 * time.Minute},
	OperationMCPAPI:    {MaxRequests: 100, Window: 60 * time.Second},
	OperationMutations: {MaxRequests: 60, Window: 60 * time.Second},
}

// ConfigFor returns the limit configuration for an operation.
func ConfigFor(op Operation) (Config, bool) {
	cfg, ok := configs[op]
	return cfg, ok
}

// Key composes the counter key for an operation and principal identifier.
//
// The format "<operation>:<identifier>" is stable: external dashboards parse
// it, so it must never change. Identifiers are opaque and passed through
// unescaped; this stays unambiguous because operation names never contain a
// colon.
func Key(op Operation, identifier string) string {
	return string(op) + ":" + identifier
}
