package ports

import (
	"context"

	"go.trai.ch/weld/internal/core/domain"
)

// Processor turns one module path into a parsed module.
// Implementations are called concurrently from the discovery workers.
//
//go:generate mockgen -source=processor.go -destination=mocks/mock_processor.go -package=mocks
type Processor interface {
	Process(ctx context.Context, path string) (*domain.ParsedModule, error)
}
