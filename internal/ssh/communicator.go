// Package ssh executes provisioning commands on remote TPU hosts.
package ssh

import "context"

// Communicator executes commands on a remote host.
type Communicator interface {
	// Execute runs a command remotely and returns its combined output.
	Execute(ctx context.Context, command string) (string, error)
}
