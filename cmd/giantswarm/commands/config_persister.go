package commands

import (
	"sync"

	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
)

// ConfigPersister implements the giantswarm.TokenPersister interface.
type ConfigPersister struct {
	mutex sync.Mutex
}

var _ giantswarm.TokenPersister = (*ConfigPersister)(nil)

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// UpdateToken stores the session token of endpoint in the config file.
// An empty token removes it.
func (p *ConfigPersister) UpdateToken(endpoint, token string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()
	config.Endpoint = endpoint
	config.Token = token

	return saveConfigStruct(config)
}
