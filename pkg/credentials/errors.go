package credentials

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates the ways credential configuration can be rejected.
type ErrorKind int

const (
	MissingField ErrorKind = iota + 1
	MalformedURL
	ProjectMismatch
	MalformedEmail
	MalformedPrivateKey
	TemplateCredentialsUsed
)

func (k ErrorKind) String() string {
	switch k {
	case MissingField:
		return "MissingField"
	case MalformedURL:
		return "MalformedUrl"
	case ProjectMismatch:
		return "ProjectMismatch"
	case MalformedEmail:
		return "MalformedEmail"
	case MalformedPrivateKey:
		return "MalformedPrivateKey"
	case TemplateCredentialsUsed:
		return "TemplateCredentialsUsed"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels for errors.Is; they match any ConfigError of the same kind.
var (
	ErrMissingField            = &ConfigError{Kind: MissingField}
	ErrMalformedURL            = &ConfigError{Kind: MalformedURL}
	ErrProjectMismatch         = &ConfigError{Kind: ProjectMismatch}
	ErrMalformedEmail          = &ConfigError{Kind: MalformedEmail}
	ErrMalformedPrivateKey     = &ConfigError{Kind: MalformedPrivateKey}
	ErrTemplateCredentialsUsed = &ConfigError{Kind: TemplateCredentialsUsed}
)

// ConfigError reports a static credential misconfiguration. Reason never
// contains private key material.
type ConfigError struct {
	Kind   ErrorKind
	Field  Field
	Reason string
}

func (e *ConfigError) Error() string {
	msg := e.Kind.String()
	if e.Field != "" {
		msg += " (" + string(e.Field) + ")"
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Field == "" || t.Field == e.Field)
}

func newConfigError(kind ErrorKind, field Field, format string, args ...any) *ConfigError {
	return &ConfigError{Kind: kind, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from err, or 0 when err is not a ConfigError.
func KindOf(err error) ErrorKind {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Kind
	}
	return 0
}
