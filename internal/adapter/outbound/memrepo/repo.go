package memrepo

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gqlizer/internal/domain"
	"gqlizer/internal/usecase"
)

// InMemoryToolRepository provides an in-memory ToolRepository. Contents
// are rebuilt from the schema sources on every startup or re-sync; nothing
// survives a restart.
type InMemoryToolRepository struct {
	mu                sync.RWMutex
	tools             map[string]domain.Tool
	invocationDetails map[string]usecase.InvocationDetails
	logger            *slog.Logger
}

// NewInMemoryToolRepository creates a new in-memory repository.
func NewInMemoryToolRepository(logger *slog.Logger) *InMemoryToolRepository {
	return &InMemoryToolRepository{
		tools:             make(map[string]domain.Tool),
		invocationDetails: make(map[string]usecase.InvocationDetails),
		logger:            logger.With("component", "mem_repo"),
	}
}

// Save stores the given tools and their invocation details. Slices
// correspond by index and must have the same length.
func (r *InMemoryToolRepository) Save(ctx context.Context, tools []domain.Tool, details []usecase.InvocationDetails) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(tools) != len(details) {
		return fmt.Errorf("save failed: mismatch between number of tools (%d) and invocation details (%d)", len(tools), len(details))
	}

	count := 0
	for i, tool := range tools {
		if tool.Name == "" {
			r.logger.Warn("Skipping tool with empty name during save", slog.Int("index", i))
			continue
		}
		r.tools[tool.Name] = tool
		r.invocationDetails[tool.Name] = details[i]
		count++
	}
	r.logger.Info("Saved tools and invocation details", slog.Int("count", count), slog.Int("total_tools", len(r.tools)))
	return nil
}

// List returns all tools currently stored.
func (r *InMemoryToolRepository) List(ctx context.Context) ([]domain.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]domain.Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		list = append(list, tool)
	}
	return list, nil
}

// FindToolByName retrieves a tool definition by its name.
func (r *InMemoryToolRepository) FindToolByName(ctx context.Context, name string) (*domain.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[name]
	if !ok {
		return nil, usecase.ErrToolNotFound
	}
	return &tool, nil
}

// FindInvocationDetailsByName retrieves invocation details by tool name.
func (r *InMemoryToolRepository) FindInvocationDetailsByName(ctx context.Context, name string) (*usecase.InvocationDetails, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	details, ok := r.invocationDetails[name]
	if !ok {
		return nil, usecase.ErrToolNotFound
	}
	return &details, nil
}
