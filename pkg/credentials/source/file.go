package source

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/isometry/rtdb-credentials/pkg/credentials"
)

var TypeFile = "file"

// serviceAccountFields are read from a service-account key file when no keys
// are listed. The database URL is not part of that document.
var serviceAccountFields = []KeyEntry{
	{Key: "project_id", Target: string(credentials.FieldProjectID)},
	{Key: "client_email", Target: string(credentials.FieldClientEmail)},
	{Key: "private_key", Target: string(credentials.FieldPrivateKeyPEM)},
}

// File reads a JSON document, normally the service-account key downloaded
// from the console. Path names the file; each key selects a top-level member.
type File struct {
	Path string     `mapstructure:"path"`
	Keys []KeyEntry `mapstructure:"keys"`
}

func (f *File) Name() string {
	return TypeFile
}

func (f *File) Fetch(_ context.Context) (Values, error) {
	if f.Path == "" {
		return nil, errors.New("file source requires a path")
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read credentials file")
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse credentials file")
	}
	if len(doc) == 0 {
		return nil, errors.New("empty credentials file")
	}

	keys := f.Keys
	if len(keys) == 0 {
		keys = serviceAccountFields
	}

	values := make(Values)
	for _, p := range keys {
		if err := assign(values, p, doc[p.Key]); err != nil {
			return nil, err
		}
	}
	return values, nil
}
