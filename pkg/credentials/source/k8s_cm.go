package source

import (
	"context"

	"github.com/pkg/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/isometry/rtdb-credentials/pkg/utils"
)

var TypeK8sCM = "k8s_cm"

// K8sCM reads keys from a Kubernetes ConfigMap. Only non-secret fields such
// as the database URL or project belong there.
type K8sCM struct {
	ctl k8sObjects

	K8sEntry `mapstructure:",squash"`
	Keys     []K8sEntry `mapstructure:"keys"`
}

func (k *K8sCM) Name() string {
	return TypeK8sCM
}

func (k *K8sCM) Fetch(ctx context.Context) (values Values, err error) {
	entries := k8sEntries(k.K8sEntry, k.Keys)
	if len(entries) == 0 {
		return nil, errNoKeys
	}

	if k.ctl == nil {
		k.ctl, err = newK8sController()
		if err != nil {
			return nil, errors.Wrap(err, "failed to create Kubernetes controller")
		}
	}

	values = make(Values)
	for _, p := range entries {
		keyCtx, cancel := p.context(ctx)
		cm, err := k.ctl.GetConfigMap(keyCtx, p.Namespace, p.Path, metav1.GetOptions{})
		utils.CancelContext(cancel)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get Kubernetes config map")
		}

		data, ok := cm.Data[p.dataKey()]
		if !ok {
			return nil, errors.Errorf("key %q not found in config map %s/%s", p.dataKey(), p.Namespace, p.Path)
		}
		if err = assign(values, p.KeyEntry, data); err != nil {
			return nil, err
		}
	}
	return values, nil
}
