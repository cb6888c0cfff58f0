package vault

// VaultFactory creates Vault instances from a location string
type VaultFactory interface {
	// NewVault opens the vault found at location
	NewVault(location string) (DurableVault, error)
}
