package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"gqlizer/internal/domain"
)

// ServeToolsUseCase exposes the generated tool catalog to inbound
// surfaces. The catalog is whatever the last sync stored; listing never
// touches an upstream GraphQL endpoint.
type ServeToolsUseCase struct {
	repository ToolRepository
	logger     *slog.Logger
}

// NewServeToolsUseCase creates a new ServeToolsUseCase.
func NewServeToolsUseCase(repository ToolRepository, logger *slog.Logger) *ServeToolsUseCase {
	return &ServeToolsUseCase{
		repository: repository,
		logger:     logger.With("usecase", "ServeTools"),
	}
}

// Execute returns the stored tool catalog.
func (uc *ServeToolsUseCase) Execute(ctx context.Context) ([]domain.Tool, error) {
	tools, err := uc.repository.List(ctx)
	if err != nil {
		uc.logger.Error("Listing tool catalog failed", slog.Any("error", err))
		return nil, fmt.Errorf("listing tool catalog: %w", err)
	}
	uc.logger.Debug("Served tool catalog", slog.Int("tool_count", len(tools)))
	return tools, nil
}
