package source

import (
	"context"

	"github.com/pkg/errors"

	"github.com/isometry/rtdb-credentials/pkg/credentials"
)

var TypeStatic = "static"

// Static supplies values written inline in the configuration, the
// counterpart of compiled-in constants. Empty values are dropped so that they
// never clear a field an earlier source supplied.
type Static struct {
	values Values
}

func newStatic(params Params) (*Static, error) {
	s := &Static{values: make(Values, len(params))}
	for name, raw := range params {
		field, err := credentials.ParseField(name)
		if err != nil {
			return nil, err
		}
		value, err := stringValue(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", field)
		}
		if value != "" {
			s.values[field] = value
		}
	}
	return s, nil
}

// NewStatic wraps a Raw whose non-empty fields become the source values.
func NewStatic(raw credentials.Raw) *Static {
	s := &Static{values: make(Values)}
	for _, f := range credentials.Fields() {
		if v := raw.Get(f); v != "" {
			s.values[f] = v
		}
	}
	return s
}

func (s *Static) Name() string {
	return TypeStatic
}

func (s *Static) Fetch(_ context.Context) (Values, error) {
	out := make(Values, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}
