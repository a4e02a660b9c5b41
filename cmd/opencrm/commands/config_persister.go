package commands

import (
	"sync"
)

// ConfigPersister implements the auth.KeyPersister interface by caching
// session access keys in the config file.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// SaveAccessKey stores accessKey for systemName; an empty key removes it.
func (p *ConfigPersister) SaveAccessKey(systemName, accessKey string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()

	if accessKey == "" {
		delete(config.AccessKeys, systemName)
	} else {
		if config.AccessKeys == nil {
			config.AccessKeys = make(map[string]string)
		}

		config.AccessKeys[systemName] = accessKey
	}

	return saveConfigStruct(config)
}
