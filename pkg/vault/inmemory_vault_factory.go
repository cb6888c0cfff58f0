package vault

import "github.com/mr-shifu/puzzle-lib/pkg/common/vault"

type InMemoryVaultFactory struct{}

// NewVault returns an empty InMemoryVault; location is ignored
func (f InMemoryVaultFactory) NewVault(location string) (vault.DurableVault, error) {
	return NewInMemoryVault(), nil
}
