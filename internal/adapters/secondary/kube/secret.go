package kube

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	log "github.com/sirupsen/logrus"

	"model-inference-app/internal/config"
)

const defaultNamespace = "default"

// SecretURLSource reads the model URL from a key of a Kubernetes Secret.
type SecretURLSource struct {
	client    kubernetes.Interface
	namespace string
	name      string
	key       string
}

// NewSecretURLSource builds a clientset the same way for in-cluster and
// local runs: in-cluster config, explicit kubeconfig, or ~/.kube/config.
func NewSecretURLSource(cfg *config.KubernetesConfig) (*SecretURLSource, error) {
	var restCfg *rest.Config
	var err error

	if cfg.InCluster {
		restCfg, err = rest.InClusterConfig()
	} else if cfg.KubeConfigPath != "" {
		restCfg, err = clientcmd.BuildConfigFromFlags("", cfg.KubeConfigPath)
	} else {
		home, _ := os.UserHomeDir()
		kubeconfig := filepath.Join(home, ".kube", "config")
		restCfg, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
	}
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	return NewSecretURLSourceForConfig(restCfg, cfg)
}

// NewSecretURLSourceForConfig builds the clientset from restCfg, bounding every
// API request by cfg.Timeout.
func NewSecretURLSourceForConfig(restCfg *rest.Config, cfg *config.KubernetesConfig) (*SecretURLSource, error) {
	restCfg = rest.CopyConfig(restCfg)
	restCfg.Timeout = cfg.Timeout

	client, err := kubernetes.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("create k8s clientset: %w", err)
	}

	return NewSecretURLSourceWithClient(client, cfg.SecretNamespace, cfg.SecretName, cfg.SecretKey), nil
}

func NewSecretURLSourceWithClient(client kubernetes.Interface, namespace, name, key string) *SecretURLSource {
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &SecretURLSource{
		client:    client,
		namespace: namespace,
		name:      name,
		key:       key,
	}
}

// LookupURL treats a missing Secret or key as "not configured".
func (s *SecretURLSource) LookupURL(ctx context.Context) (string, bool, error) {
	secret, err := s.client.CoreV1().Secrets(s.namespace).Get(ctx, s.name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			log.WithFields(log.Fields{
				"namespace": s.namespace,
				"secret":    s.name,
			}).Debug("model url secret not found")
			return "", false, nil
		}
		return "", false, fmt.Errorf("get secret %s/%s: %w", s.namespace, s.name, err)
	}

	if v, ok := secret.Data[s.key]; ok {
		url := strings.TrimSpace(string(v))
		return url, url != "", nil
	}
	if v, ok := secret.StringData[s.key]; ok {
		url := strings.TrimSpace(v)
		return url, url != "", nil
	}
	return "", false, nil
}
