// Package credentials holds the realtime-database credential snapshot: the
// endpoint URL, project identifier, service-account principal and PEM private
// key a process needs before it can initialize its remote client.
//
// A snapshot is built once by Load, classified as production or template, and
// is read-only afterwards. Private key material never appears in String,
// GoString, LogValue or MarshalJSON output.
package credentials

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Field names a CredentialSet field as it appears in configuration.
type Field string

const (
	FieldDatabaseURL   Field = "databaseUrl"
	FieldProjectID     Field = "projectId"
	FieldClientEmail   Field = "clientEmail"
	FieldPrivateKeyPEM Field = "privateKeyPem"
)

// Fields returns all fields in validation order.
func Fields() []Field {
	return []Field{FieldDatabaseURL, FieldProjectID, FieldClientEmail, FieldPrivateKeyPEM}
}

var fieldAliases = map[string]Field{
	"databaseurl":   FieldDatabaseURL,
	"url":           FieldDatabaseURL,
	"projectid":     FieldProjectID,
	"project":       FieldProjectID,
	"clientemail":   FieldClientEmail,
	"email":         FieldClientEmail,
	"privatekeypem": FieldPrivateKeyPEM,
	"privatekey":    FieldPrivateKeyPEM,
}

// ParseField resolves a field name, ignoring case and '_' / '-' separators,
// so that "private_key" (service-account JSON) and "PRIVATE-KEY" both map to
// FieldPrivateKeyPEM.
func ParseField(name string) (Field, error) {
	normalized := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(name))
	if f, ok := fieldAliases[normalized]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown credential field %q", name)
}

// Raw is the unvalidated input to Load. Values may come from compiled-in
// constants, environment variables or a secret store; the contract is the same.
//
// PrivateKeyPEM is normally stored on a single line with its line breaks
// written as the two characters `\n`. Real line breaks are accepted as well.
type Raw struct {
	DatabaseURL   string `mapstructure:"databaseUrl" yaml:"databaseUrl" json:"databaseUrl"`
	ProjectID     string `mapstructure:"projectId" yaml:"projectId" json:"projectId"`
	ClientEmail   string `mapstructure:"clientEmail" yaml:"clientEmail" json:"clientEmail"`
	PrivateKeyPEM string `mapstructure:"privateKeyPem" yaml:"privateKeyPem" json:"privateKeyPem"`
}

// Get returns the value of field f.
func (r Raw) Get(f Field) string {
	switch f {
	case FieldDatabaseURL:
		return r.DatabaseURL
	case FieldProjectID:
		return r.ProjectID
	case FieldClientEmail:
		return r.ClientEmail
	case FieldPrivateKeyPEM:
		return r.PrivateKeyPEM
	}
	return ""
}

// Set assigns value to field f.
func (r *Raw) Set(f Field, value string) error {
	switch f {
	case FieldDatabaseURL:
		r.DatabaseURL = value
	case FieldProjectID:
		r.ProjectID = value
	case FieldClientEmail:
		r.ClientEmail = value
	case FieldPrivateKeyPEM:
		r.PrivateKeyPEM = value
	default:
		return fmt.Errorf("unknown credential field %q", f)
	}
	return nil
}

// Merge returns a copy of r where every non-empty field of other wins.
func (r Raw) Merge(other Raw) Raw {
	for _, f := range Fields() {
		if v := other.Get(f); v != "" {
			_ = r.Set(f, v)
		}
	}
	return r
}

// Kind classifies a loaded CredentialSet.
type Kind int

const (
	KindUnknown Kind = iota
	// KindTemplate carries placeholder values and can never authenticate.
	KindTemplate
	// KindProduction carries real secrets.
	KindProduction
)

func (k Kind) String() string {
	switch k {
	case KindTemplate:
		return "template"
	case KindProduction:
		return "production"
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "template":
		return KindTemplate, nil
	case "production", "prod":
		return KindProduction, nil
	}
	return KindUnknown, fmt.Errorf("unknown credentials kind %q", s)
}

// CredentialSet is a validated, immutable credential snapshot. The zero value
// is not usable; obtain one from Load.
type CredentialSet struct {
	id          uuid.UUID
	kind        Kind
	databaseURL string
	projectID   string
	clientEmail string
	region      string
	domain      string
	fingerprint string
	privateKey  []byte
}

// ID identifies this snapshot in logs.
func (c *CredentialSet) ID() string { return c.id.String() }

func (c *CredentialSet) Kind() Kind { return c.kind }

func (c *CredentialSet) IsTemplate() bool { return c.kind != KindProduction }

func (c *CredentialSet) DatabaseURL() string { return c.databaseURL }

func (c *CredentialSet) ProjectID() string { return c.projectID }

func (c *CredentialSet) ClientEmail() string { return c.clientEmail }

// Region is the database region parsed from the URL, e.g. "asia-southeast1".
func (c *CredentialSet) Region() string { return c.region }

// Domain is the provider domain parsed from the URL.
func (c *CredentialSet) Domain() string { return c.domain }

// Fingerprint is a short SHA-256 digest of the public half of the private key.
// It is empty for templates.
func (c *CredentialSet) Fingerprint() string { return c.fingerprint }

// PrivateKeyPEM returns the private key with real line breaks. The caller
// owns the returned string and must not log it.
func (c *CredentialSet) PrivateKeyPEM() string { return string(c.privateKey) }

// Scrub zeroes the private key held by the snapshot. It is meant for process
// teardown and must not race with readers.
func (c *CredentialSet) Scrub() {
	for i := range c.privateKey {
		c.privateKey[i] = 0
	}
	c.privateKey = nil
	c.fingerprint = ""
}
