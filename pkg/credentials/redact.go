package credentials

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

const (
	redacted    = "[REDACTED]"
	placeholder = "[PLACEHOLDER]"
	scrubbed    = "[SCRUBBED]"

	googleTokenURI = "https://oauth2.googleapis.com/token"
)

// Summary is the publishable view of a CredentialSet.
type Summary struct {
	ID          string `json:"id" yaml:"id"`
	Kind        Kind   `json:"kind" yaml:"kind"`
	DatabaseURL string `json:"databaseUrl" yaml:"databaseUrl"`
	ProjectID   string `json:"projectId" yaml:"projectId"`
	ClientEmail string `json:"clientEmail" yaml:"clientEmail"`
	Region      string `json:"region" yaml:"region"`
	Domain      string `json:"domain" yaml:"domain"`
	PrivateKey  string `json:"privateKey" yaml:"privateKey"`
	Fingerprint string `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
}

// Redacted returns a summary with the private key replaced by a marker.
func (c CredentialSet) Redacted() Summary {
	key := redacted
	switch {
	case len(c.privateKey) == 0:
		key = scrubbed
	case c.kind != KindProduction:
		key = placeholder
	}
	return Summary{
		ID:          c.id.String(),
		Kind:        c.kind,
		DatabaseURL: c.databaseURL,
		ProjectID:   c.projectID,
		ClientEmail: c.clientEmail,
		Region:      c.region,
		Domain:      c.domain,
		PrivateKey:  key,
		Fingerprint: c.fingerprint,
	}
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "kind:        %s\n", s.Kind)
	fmt.Fprintf(&b, "project:     %s\n", s.ProjectID)
	fmt.Fprintf(&b, "url:         %s\n", s.DatabaseURL)
	fmt.Fprintf(&b, "region:      %s\n", s.Region)
	fmt.Fprintf(&b, "email:       %s\n", s.ClientEmail)
	fmt.Fprintf(&b, "private key: %s", s.PrivateKey)
	if s.Fingerprint != "" {
		fmt.Fprintf(&b, "\nfingerprint: %s", s.Fingerprint)
	}
	return b.String()
}

func (c CredentialSet) String() string {
	s := c.Redacted()
	return fmt.Sprintf("CredentialSet{kind=%s project=%s url=%s email=%s key=%s}",
		s.Kind, s.ProjectID, s.DatabaseURL, s.ClientEmail, s.PrivateKey)
}

func (c CredentialSet) GoString() string {
	return c.String()
}

func (c CredentialSet) LogValue() slog.Value {
	s := c.Redacted()
	attrs := []slog.Attr{
		slog.String("id", s.ID),
		slog.String("kind", s.Kind.String()),
		slog.String("project", s.ProjectID),
		slog.String("url", s.DatabaseURL),
		slog.String("email", s.ClientEmail),
	}
	if s.Fingerprint != "" {
		attrs = append(attrs, slog.String("fingerprint", s.Fingerprint))
	}
	return slog.GroupValue(attrs...)
}

func (c CredentialSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Redacted())
}

type serviceAccountKey struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// ServiceAccountJSON renders the snapshot as a Google service-account key
// document for the remote client initializer. Templates are refused.
func (c *CredentialSet) ServiceAccountJSON() ([]byte, error) {
	if _, err := RequireProduction(c); err != nil {
		return nil, err
	}
	if len(c.privateKey) == 0 {
		return nil, newConfigError(MissingField, FieldPrivateKeyPEM, "private key has been scrubbed")
	}
	return json.Marshal(serviceAccountKey{
		Type:        "service_account",
		ProjectID:   c.projectID,
		ClientEmail: c.clientEmail,
		PrivateKey:  string(c.privateKey),
		TokenURI:    googleTokenURI,
	})
}
