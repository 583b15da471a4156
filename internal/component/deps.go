// internal/component/deps.go
package component

import (
	"github.com/BrightPathCover/leadfunnel/internal/config"
	"github.com/BrightPathCover/leadfunnel/internal/vault"
)

// Deps exposes process-wide resources to Components during Init.
type Deps interface {
	GetConfig() *config.Config
	GetVault() *vault.Client
}
