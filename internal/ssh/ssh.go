package ssh

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/ssh"
)

// sshDial is replaceable in tests.
var sshDial = ssh.Dial

// Freshly created TPU hosts take a while to accept connections.
var (
	dialAttempts      = 10
	dialRetryInterval = 5 * time.Second
)

// SSHCommunicator implements Communicator using the SSH protocol.
type SSHCommunicator struct {
	host       string
	user       string
	privateKey []byte
}

// NewSSHCommunicator creates a new SSHCommunicator.
func NewSSHCommunicator(host, user string, privateKey []byte) *SSHCommunicator {
	return &SSHCommunicator{
		host:       host,
		user:       user,
		privateKey: privateKey,
	}
}

// NewSSHCommunicatorFromKeyFile creates a communicator reading the private
// key from disk.
func NewSSHCommunicatorFromKeyFile(host, user, keyFile string) (*SSHCommunicator, error) {
	// #nosec G304
	key, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return NewSSHCommunicator(host, user, key), nil
}

func (c *SSHCommunicator) Execute(ctx context.Context, command string) (string, error) {
	signer, err := ssh.ParsePrivateKey(c.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to parse private key: %w", err)
	}

	config := &ssh.ClientConfig{
		User: c.user,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // TPU VMs have freshly generated host keys
		Timeout:         10 * time.Second,
	}

	var client *ssh.Client
	for i := 0; i < dialAttempts; i++ {
		client, err = sshDial("tcp", c.host+":22", config)
		if err == nil || i == dialAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(dialRetryInterval):
		}
	}
	if client == nil {
		return "", fmt.Errorf("failed to dial ssh: %w", err)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	output, err := session.CombinedOutput(command)
	if err != nil {
		return string(output), fmt.Errorf("failed to execute command: %w, output: %s", err, output)
	}

	return string(output), nil
}
