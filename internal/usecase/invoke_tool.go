package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// InvocationDetails holds what is needed to execute the upstream call for
// a tool. For GraphQL this identifies the schema the operation is compiled
// against, the field being called, and where to send the result.
type InvocationDetails struct {
	// Type indicates the invoker to use. Currently always "graphql".
	Type string `json:"type"`

	// Source is the schema source the tool was generated from. The invoker
	// uses it to look up the compiler bound to that schema.
	Source string `json:"source"`

	// Endpoint is the HTTP endpoint accepting POSTed operations.
	Endpoint string `json:"endpoint"`

	// Headers are static headers included on every invocation request.
	Headers map[string]string `json:"headers,omitempty"`

	// ToolName is the full tool name ("query-tool_profiles"). The compiler
	// re-derives operation kind and field name from it.
	ToolName string `json:"tool_name"`

	// OperationKind is "query" or "mutation".
	OperationKind string `json:"operation_kind"`

	// FieldName is the root field the tool maps to.
	FieldName string `json:"field_name"`
}

// ToolInvoker executes the upstream API call for a tool. Arguments are the
// raw JSON object from the caller; implementations compile them into an
// operation string and send it.
type ToolInvoker interface {
	Invoke(ctx context.Context, details InvocationDetails, args json.RawMessage) (map[string]interface{}, error)
}

// InvokeToolUseCase handles a tool invocation request end to end.
type InvokeToolUseCase struct {
	repository ToolRepository
	invoker    ToolInvoker
	logger     *slog.Logger
}

// NewInvokeToolUseCase creates a new InvokeToolUseCase.
func NewInvokeToolUseCase(repo ToolRepository, invoker ToolInvoker, logger *slog.Logger) *InvokeToolUseCase {
	return &InvokeToolUseCase{
		repository: repo,
		invoker:    invoker,
		logger:     logger.With("usecase", "InvokeTool"),
	}
}

// Execute looks up the tool and its invocation details, then delegates to
// the ToolInvoker. Argument values are not validated against the tool's
// input schema here; shape mismatches surface as upstream GraphQL errors.
func (uc *InvokeToolUseCase) Execute(ctx context.Context, toolName string, args json.RawMessage) (map[string]interface{}, error) {
	log := uc.logger.With(slog.String("tool_name", toolName))
	log.Info("Executing tool invocation")

	if _, err := uc.repository.FindToolByName(ctx, toolName); err != nil {
		log.Warn("Tool definition not found", slog.Any("error", err))
		return nil, fmt.Errorf("tool '%s' definition not found: %w", toolName, err)
	}

	details, err := uc.repository.FindInvocationDetailsByName(ctx, toolName)
	if err != nil {
		log.Error("Invocation details not found", slog.Any("error", err))
		return nil, fmt.Errorf("tool '%s' invocation details not found: %w", toolName, err)
	}

	result, err := uc.invoker.Invoke(ctx, *details, args)
	if err != nil {
		log.Error("Failed to invoke upstream tool", slog.Any("error", err))
		return nil, fmt.Errorf("failed to invoke tool %s: %w", toolName, err)
	}

	log.Info("Tool invocation successful")
	return result, nil
}
