package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const maxListedKeys = 20

type MissingCredentialError struct {
	error
	Field string
}

func NewMissingCredentialError(field string) *MissingCredentialError {
	return &MissingCredentialError{
		error: fmt.Errorf("%s is required and cannot be empty or N/A", field),
		Field: field,
	}
}

func IsMissingCredentialError(err error) bool {
	var e *MissingCredentialError
	return errors.As(err, &e)
}

// ResourceNotFoundError names the searched key and, when known, the keys
// that were available at lookup time.
type ResourceNotFoundError struct {
	error
	Kind      string
	Key       string
	Available []string
}

func NewResourceNotFoundError(kind, key string, available ...string) *ResourceNotFoundError {
	msg := fmt.Sprintf("%s '%s' not found", kind, key)
	if len(available) > 0 {
		listed := available
		if len(listed) > maxListedKeys {
			listed = listed[:maxListedKeys]
		}
		msg = fmt.Sprintf("%s. Available: %s", msg, strings.Join(listed, ", "))
		if len(available) > maxListedKeys {
			msg = fmt.Sprintf("%s (and %d more)", msg, len(available)-maxListedKeys)
		}
	}
	return &ResourceNotFoundError{
		error:     errors.New(msg),
		Kind:      kind,
		Key:       key,
		Available: available,
	}
}

func NewHostNotFoundError(host string, available ...string) *ResourceNotFoundError {
	return NewResourceNotFoundError("host", host, available...)
}

func NewVMNotFoundError(vm string, available ...string) *ResourceNotFoundError {
	return NewResourceNotFoundError("virtual machine", vm, available...)
}

func NewClusterNotFoundError(cluster string, available ...string) *ResourceNotFoundError {
	return NewResourceNotFoundError("cluster", cluster, available...)
}

func NewHostnameNotFoundError(hostname string, available ...string) *ResourceNotFoundError {
	return NewResourceNotFoundError("hostname", hostname, available...)
}

func NewRunNotFoundError(id uuid.UUID) *ResourceNotFoundError {
	return NewResourceNotFoundError("validation run", id.String())
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

type ConfigurationError struct {
	error
}

func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{fmt.Errorf(format, args...)}
}

func NewMissingColumnError(sheet, column string, available []string) *ConfigurationError {
	return NewConfigurationError("required column '%s' not found in sheet '%s'. Available columns: %s",
		column, sheet, strings.Join(available, ", "))
}

func IsConfigurationError(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}

// ConnectionError wraps a transport or session failure talking to an endpoint.
type ConnectionError struct {
	error
	Endpoint string
	cause    error
}

func NewConnectionError(endpoint string, cause error) *ConnectionError {
	return &ConnectionError{
		error:    fmt.Errorf("failed to connect to %s: %w", endpoint, cause),
		Endpoint: endpoint,
		cause:    cause,
	}
}

func (e *ConnectionError) Unwrap() error {
	return e.cause
}

func IsConnectionError(err error) bool {
	var e *ConnectionError
	return errors.As(err, &e)
}

type UnauthorizedError struct {
	error
}

func NewUnauthorizedError(endpoint string) *UnauthorizedError {
	return &UnauthorizedError{fmt.Errorf("authentication rejected by %s", endpoint)}
}

func IsUnauthorizedError(err error) bool {
	var e *UnauthorizedError
	return errors.As(err, &e)
}

type NotConnectedError struct {
	error
}

func NewNotConnectedError(client string) *NotConnectedError {
	return &NotConnectedError{fmt.Errorf("%s is not connected: call Connect first", client)}
}

func IsNotConnectedError(err error) bool {
	var e *NotConnectedError
	return errors.As(err, &e)
}
