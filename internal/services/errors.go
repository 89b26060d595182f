// Package services carries the error taxonomy shared by the engine and the
// external detector clients. Marker or landmark absence is deliberately not
// an error anywhere in this package: absence is a normal input state and is
// represented in the data model, not the error channel.
package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInput marks malformed input, most often an undecodable image.
	// Fatal for that upload; no partial result is produced.
	ErrInput = errors.New("input error")
	// ErrExternalTool marks a detector or model call that failed internally.
	ErrExternalTool = errors.New("external tool error")
	// ErrTimeout marks a detector call that did not return within the
	// caller's deadline. The engine never retries on its own.
	ErrTimeout = errors.New("timeout")
	// ErrConfiguration marks unusable configuration, including a missing
	// detection model at startup.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks a missing animal record.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
