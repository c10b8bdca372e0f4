package config

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/isometry/rtdb-credentials/pkg/credentials"
	"github.com/isometry/rtdb-credentials/pkg/credentials/source"
)

// Document is the on-disk layout of a configuration file.
type Document struct {
	Credentials credentials.Raw `yaml:"credentials"`
	Sources     []source.Entry  `yaml:"sources,omitempty"`
}

// TemplateDocument returns the publishable template configuration.
func TemplateDocument() Document {
	return Document{Credentials: credentials.TemplateRaw()}
}

// ProductionDocument returns a configuration holding creds, with the
// private key folded onto a single line.
func ProductionDocument(creds *credentials.CredentialSet) (Document, error) {
	if _, err := credentials.RequireProduction(creds); err != nil {
		return Document{}, err
	}
	return Document{
		Credentials: credentials.Raw{
			DatabaseURL:   creds.DatabaseURL(),
			ProjectID:     creds.ProjectID(),
			ClientEmail:   creds.ClientEmail(),
			PrivateKeyPEM: credentials.EscapeNewlines(creds.PrivateKeyPEM()),
		},
	}, nil
}

// Marshal renders the document as YAML with 2-space indent.
func (d Document) Marshal(header string) ([]byte, error) {
	var buf bytes.Buffer
	if header != "" {
		buf.WriteString(header)
	}
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	_ = encoder.Close()
	return buf.Bytes(), nil
}
