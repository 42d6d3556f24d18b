package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/imamik/tpuprep/internal/platform/tpu"
)

// tpuPollInterval is how often node state is re-read while waiting.
const tpuPollInterval = 15 * time.Second

// newTPUClient creates a TPU API client (replaced in tests).
var newTPUClient = func() tpuAPI {
	return tpu.NewClient(tpu.NewGcloudCredentials())
}

// tpuAPI is the subset of the TPU client used by handlers.
type tpuAPI interface {
	Create(ctx context.Context, req tpu.CreateRequest) error
	Status(ctx context.Context, name, zone string) (*tpu.Node, error)
	Delete(ctx context.Context, name, zone string) error
	WaitForState(ctx context.Context, name, zone, state string, interval time.Duration) error
	Connections(ctx context.Context, name, zone string) ([]string, error)
}

// TPUCreate creates a TPU node using the configured zone, accelerator
// type and runtime version. With wait, blocks until the node is READY and
// prints its worker addresses.
func TPUCreate(ctx context.Context, configPath, name string, wait bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if err := checkTPUPrerequisitesOnly(); err != nil {
		return err
	}

	client := newTPUClient()
	req := tpu.CreateRequest{
		Name:            name,
		Zone:            cfg.TPU.Zone,
		AcceleratorType: cfg.TPU.AcceleratorType,
		RuntimeVersion:  cfg.TPU.RuntimeVersion,
		Preemptible:     cfg.TPU.Preemptible,
	}

	log.Printf("Creating TPU %s (%s, %s) in %s", name, req.AcceleratorType, req.RuntimeVersion, req.Zone)
	if err := client.Create(ctx, req); err != nil {
		return err
	}

	if !wait {
		fmt.Printf("TPU %s creation requested. Check progress with: tpuprep tpu status %s\n", name, name)
		return nil
	}

	log.Printf("Waiting for TPU %s to become READY...", name)
	if err := client.WaitForState(ctx, name, cfg.TPU.Zone, "READY", tpuPollInterval); err != nil {
		return err
	}

	hosts, err := client.Connections(ctx, name, cfg.TPU.Zone)
	if err != nil {
		return err
	}

	fmt.Printf("TPU %s is READY\n", name)
	if len(hosts) > 0 {
		fmt.Printf("Workers: %s\n", strings.Join(hosts, ", "))
		fmt.Printf("\nProvision them with:\n")
		for _, host := range hosts {
			fmt.Printf("  tpuprep remote --host %s\n", host)
		}
	}
	return nil
}

// TPUStatus prints the current state of a TPU node.
func TPUStatus(ctx context.Context, configPath, name string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	node, err := newTPUClient().Status(ctx, name, cfg.TPU.Zone)
	if err != nil {
		return err
	}

	fmt.Printf("TPU %s\n", name)
	fmt.Printf("  state:       %s\n", node.State)
	if node.Health != "" {
		fmt.Printf("  health:      %s\n", node.Health)
	}
	fmt.Printf("  accelerator: %s\n", node.AcceleratorType)
	fmt.Printf("  runtime:     %s\n", node.RuntimeVersion)
	for _, ep := range node.NetworkEndpoints {
		external := ""
		if ep.AccessConfig != nil {
			external = ep.AccessConfig.ExternalIP
		}
		fmt.Printf("  worker:      %s (external %s)\n", ep.IPAddress, external)
	}
	return nil
}

// TPUDelete removes a TPU node, waiting up to timeout for it to be gone.
func TPUDelete(ctx context.Context, configPath, name string, timeout time.Duration) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.Printf("Deleting TPU %s in %s", name, cfg.TPU.Zone)
	if err := newTPUClient().Delete(ctx, name, cfg.TPU.Zone); err != nil {
		return err
	}

	fmt.Printf("TPU %s deletion requested\n", name)
	return nil
}

// checkTPUPrerequisitesOnly verifies the tools needed for TPU management.
func checkTPUPrerequisitesOnly() error {
	results := checkTPUPrereqs()
	if err := results.Error(); err != nil {
		return fmt.Errorf("prerequisites check failed: %w", err)
	}
	return nil
}
