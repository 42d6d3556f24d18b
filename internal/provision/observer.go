package provision

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// Observer defines the interface for structured observability during provisioning.
type Observer interface {
	Logger // Embeds Logger for printf-style messages

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a phase
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "bootstrap-pip", "fetch-datasets")
	Message   string            // Human-readable message
	Artifact  string            // Artifact name/path if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventCommandRunning indicates a command is being executed.
	EventCommandRunning EventType = "command.running"
	// EventArtifactCreated indicates an artifact was written to disk.
	EventArtifactCreated EventType = "artifact.created"
	// EventArtifactExists indicates an artifact already exists and was kept.
	EventArtifactExists EventType = "artifact.exists"

	// EventProgress indicates progress in a long-running operation.
	EventProgress EventType = "progress"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct {
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: make(map[string]string),
	}
}

// Printf implements the Logger interface.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements the Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	// Merge context fields
	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}

	log.Print(formatEvent(event))
}

// Progress implements the Observer interface.
func (o *ConsoleObserver) Progress(phase string, current, total int) {
	if total == 0 {
		log.Printf("[%s] Progress: %d/%d", phase, current, total)
		return
	}
	percentage := (current * 100) / total
	log.Printf("[%s] Progress: %d/%d (%d%%)", phase, current, total, percentage)
}

// WithFields implements the Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string)
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &ConsoleObserver{
		contextFields: newFields,
	}
}

// LogrObserver implements Observer on top of a logr.Logger, for embedding
// tpuprep in hosts that already carry a structured logger.
type LogrObserver struct {
	logger logr.Logger
	fields map[string]string
}

// NewLogrObserver creates an observer that forwards to the given logger.
func NewLogrObserver(logger logr.Logger) *LogrObserver {
	return &LogrObserver{
		logger: logger,
		fields: make(map[string]string),
	}
}

// Printf implements the Logger interface.
func (o *LogrObserver) Printf(format string, v ...interface{}) {
	o.logger.Info(fmt.Sprintf(format, v...))
}

// Event implements the Observer interface.
func (o *LogrObserver) Event(event Event) {
	kv := []interface{}{"type", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Artifact != "" {
		kv = append(kv, "artifact", event.Artifact)
	}
	for k, v := range o.fields {
		kv = append(kv, k, v)
	}
	for k, v := range event.Fields {
		kv = append(kv, k, v)
	}
	o.logger.Info(event.Message, kv...)
}

// Progress implements the Observer interface.
func (o *LogrObserver) Progress(phase string, current, total int) {
	o.logger.Info("progress", "phase", phase, "current", current, "total", total)
}

// WithFields implements the Observer interface.
func (o *LogrObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.fields)+len(fields))
	for k, v := range o.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &LogrObserver{logger: o.logger, fields: newFields}
}

// formatEvent formats an event for console output.
func formatEvent(event Event) string {
	var parts []string

	parts = append(parts, string(event.Type))

	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}

	if event.Artifact != "" {
		parts = append(parts, fmt.Sprintf("artifact=%s", event.Artifact))
	}

	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		var fieldParts []string
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogCommandRunning logs the execution of an external command.
func LogCommandRunning(observer Observer, phase, command string) {
	observer.Event(Event{
		Type:    EventCommandRunning,
		Phase:   phase,
		Message: command,
	})
}

// LogArtifactCreated logs a written artifact.
func LogArtifactCreated(observer Observer, phase, path string) {
	observer.Event(Event{
		Type:     EventArtifactCreated,
		Phase:    phase,
		Artifact: path,
		Message:  "created",
	})
}

// LogArtifactExists logs an artifact that already existed and was kept.
func LogArtifactExists(observer Observer, phase, path string) {
	observer.Event(Event{
		Type:     EventArtifactExists,
		Phase:    phase,
		Artifact: path,
		Message:  "already exists, skipping",
	})
}
