package source

import (
	"context"

	"github.com/mcuadros/go-defaults"
	"github.com/pkg/errors"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/isometry/rtdb-credentials/pkg/controllers/k8s"
	"github.com/isometry/rtdb-credentials/pkg/utils"
)

var TypeK8sSecret = "k8s_secret"

type k8sObjects interface {
	GetSecret(ctx context.Context, namespace, name string, opts metav1.GetOptions) (*v1.Secret, error)
	GetConfigMap(ctx context.Context, namespace, name string, opts metav1.GetOptions) (*v1.ConfigMap, error)
}

var newK8sController = func() (k8sObjects, error) {
	return k8s.NewController()
}

// K8sEntry addresses a key in a namespaced object; Path is the object name.
type K8sEntry struct {
	KeyEntry  `mapstructure:",squash"`
	Namespace string `mapstructure:"namespace" default:"default"`
}

func (k *K8sEntry) SetDefaults() {
	k.KeyEntry.SetDefaults()
	defaults.SetDefaults(k)
}

func k8sEntries(inline K8sEntry, keys []K8sEntry) []K8sEntry {
	all := make([]K8sEntry, 0, len(keys)+1)
	if inline.Path != "" || inline.Key != "" || inline.Target != "" {
		all = append(all, inline)
	}
	all = append(all, keys...)
	for i := range all {
		if all[i].Namespace == "" {
			all[i].Namespace = inline.Namespace
		}
		all[i].SetDefaults()
	}
	return all
}

func (k K8sEntry) dataKey() string {
	return utils.CoalesceZero[string](k.Key, k.Target)
}

// K8sSecret reads keys from a Kubernetes Secret.
type K8sSecret struct {
	ctl k8sObjects

	K8sEntry `mapstructure:",squash"`
	Keys     []K8sEntry `mapstructure:"keys"`
}

func (k *K8sSecret) Name() string {
	return TypeK8sSecret
}

func (k *K8sSecret) Fetch(ctx context.Context) (values Values, err error) {
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
		secret, err := k.ctl.GetSecret(keyCtx, p.Namespace, p.Path, metav1.GetOptions{})
		utils.CancelContext(cancel)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get Kubernetes secret")
		}

		data, ok := secret.Data[p.dataKey()]
		if !ok {
			return nil, errors.Errorf("key %q not found in secret %s/%s", p.dataKey(), p.Namespace, p.Path)
		}
		if err = assign(values, p.KeyEntry, data); err != nil {
			return nil, err
		}
	}
	return values, nil
}
