package ports

import "go.trai.ch/weld/internal/core/domain"

// ConfigLoader defines the interface for loading the bundler configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads weld.yaml from cwd or the nearest parent directory, applies
	// the environment and returns the resolved configuration.
	// A missing file yields the defaults rooted at cwd.
	Load(cwd string) (*domain.Config, error)
}
