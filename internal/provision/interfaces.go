// Package provision provides shared types and interfaces for TPU host provisioning.
//
// The provisioning domain is organized into focused subpackages:
//   - python/ for package-manager bootstrap and library installation
//   - dataset/ for benchmark dataset download and extraction
//
// This root package contains the phase pipeline, observer and state types
// used across subpackages.
package provision

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// PhaseFunc adapts a function to the Phase interface.
type PhaseFunc struct {
	PhaseName string
	Fn        func(ctx *Context) error
}

// Name returns the phase name.
func (p PhaseFunc) Name() string { return p.PhaseName }

// Provision invokes the wrapped function.
func (p PhaseFunc) Provision(ctx *Context) error { return p.Fn(ctx) }

// Logger is the minimal printf-style logging interface used by phases.
type Logger interface {
	Printf(format string, v ...interface{})
}
