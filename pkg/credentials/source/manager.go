package source

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/isometry/rtdb-credentials/pkg/credentials"
	"github.com/isometry/rtdb-credentials/pkg/utils"
)

var (
	supportedSourceTypes = []string{
		TypeStatic, TypeEnv, TypeFile, TypeSM, TypeSSM, TypeVault, TypeK8sCM, TypeK8sSecret, TypeKeyring,
	}
)

type Params = map[string]any

// Entry is a single-key map from source type to its parameters, as written in
// the configuration file:
//
//	sources:
//	  - aws_sm:
//	      path: prod/rtdb
//	      keys:
//	        - key: private_key
type Entry = map[string]Params

type manager struct {
	entries []Entry
}

// Resolve layers every source over base in order; a later source overrides
// the fields an earlier one supplied. The result is not validated.
func Resolve(ctx context.Context, base credentials.Raw, entries []Entry) (credentials.Raw, error) {
	if len(entries) == 0 {
		return base, nil
	}
	_inst := manager{
		entries: entries,
	}
	return _inst.resolve(ctx, base)
}

func (m *manager) resolve(ctx context.Context, raw credentials.Raw) (credentials.Raw, error) {
	log := utils.ContextLogger(ctx, slog.String("context", "source"))
	for i, entry := range m.entries {
		if len(entry) != 1 {
			return raw, fmt.Errorf("source[%d]: expected exactly one source type, got %d", i, len(entry))
		}
		for typ, params := range entry {
			src, err := identifySource(typ, params)
			if err != nil {
				return raw, errors.Wrapf(err, "source[%d]", i)
			}

			values, err := src.Fetch(ctx)
			if err != nil {
				return raw, errors.Wrapf(err, "source[%d] %s", i, src.Name())
			}

			fields := make([]string, 0, len(values))
			for field, value := range values {
				if err := raw.Set(field, value); err != nil {
					return raw, errors.Wrapf(err, "source[%d] %s", i, src.Name())
				}
				fields = append(fields, string(field))
			}
			slices.Sort(fields)
			log.Debug("source applied", slog.Int("index", i), slog.String("type", src.Name()), slog.Any("fields", fields))
		}
	}
	return raw, nil
}

func identifySource(typ string, params Params) (Source, error) {
	srcType := strings.ToLower(typ)
	if accepted := slices.Contains(supportedSourceTypes, srcType); !accepted {
		return nil, fmt.Errorf("unsupported source: %s", typ)
	}

	var src Source
	switch srcType {
	case TypeStatic:
		return newStatic(params)
	case TypeEnv:
		src = new(Env)
	case TypeFile:
		src = new(File)
	case TypeSSM:
		src = new(SSM)
	case TypeSM:
		src = new(SM)
	case TypeVault:
		src = new(Vault)
	case TypeK8sCM:
		src = new(K8sCM)
	case TypeK8sSecret:
		src = new(K8sSecret)
	case TypeKeyring:
		src = new(Keyring)
	}

	if err := decodeParams(params, src); err != nil {
		return nil, errors.Wrapf(err, "invalid %s parameters", srcType)
	}
	return src, nil
}
