package mcp

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/viant/jsonrpc"
	mcpschema "github.com/viant/mcp-protocol/schema"
	serverproto "github.com/viant/mcp-protocol/server"

	"github.com/renderhub/render-mcp/internal/conv"
	"github.com/renderhub/render-mcp/mcp/matcher"
)

// toolEntry holds metadata and execution handler for one Server tool.
type toolEntry struct {
	name        string
	description string
	inputSchema mcpschema.ToolInputSchema
	handler     func(context.Context, *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error)
}

// toolDefinition describes one capability before it is turned into a
// registry entry. input is a pointer to the zero value of the typed argument
// struct, the input schema is derived from it by reflection.
type toolDefinition struct {
	name        string
	description string
	input       any
	execute     func(context.Context, map[string]interface{}) (string, error)
}

// toolDefinitions lists every capability the service can expose. The
// configured matcher patterns decide which subset is registered.
func (s *Service) toolDefinitions() []toolDefinition {
	return []toolDefinition{
		{
			name:        "generate_image",
			description: "Render a template by id or name. Resolves whether the reference is a library or studio template and dispatches accordingly.",
			input:       &GenerateImageInput{},
			execute:     s.generateImage,
		},
		{
			name:        "generate_library_image",
			description: "Render a pre-built library template (e.g. website-screenshot) with the supplied modifications.",
			input:       &GenerateImageInput{},
			execute:     s.generateLibraryImage,
		},
		{
			name:        "generate_studio_image",
			description: "Render a user-authored studio template by numeric id or display name. URL-valued inputs are auto-mapped onto image fields when enabled.",
			input:       &GenerateImageInput{},
			execute:     s.generateStudioImage,
		},
		{
			name:        "list_templates",
			description: "List the available pre-built library templates.",
			input:       &ListTemplatesInput{},
			execute:     s.listTemplates,
		},
		{
			name:        "list_studio_templates",
			description: "List the studio templates of the authenticated account.",
			input:       &ListTemplatesInput{},
			execute:     s.listStudioTemplates,
		},
		{
			name:        "list_modifications",
			description: "List the customizable modification fields a template declares.",
			input:       &ListModificationsInput{},
			execute:     s.listModifications,
		},
		{
			name:        "check_render_status",
			description: "Check the status of an asynchronous render task by task id.",
			input:       &CheckStatusInput{},
			execute:     s.checkRenderStatus,
		},
		{
			name:        "fetch_api_docs",
			description: "Return a reference of the underlying render API endpoints and request shapes.",
			input:       &FetchDocsInput{},
			execute:     s.fetchAPIDocs,
		},
	}
}

// buildTools converts the selected definitions into registry entries. Input
// schemas are derived from the typed argument structs.
func (s *Service) buildTools() error {
	for _, def := range s.toolDefinitions() {
		if !matcher.Selected(s.config.Tools, def.name) {
			continue
		}
		if s.registry.Has(def.name) {
			continue // keep first definition encountered
		}
		var inputSchema mcpschema.ToolInputSchema
		if def.input != nil {
			if err := inputSchema.Load(def.input); err != nil {
				return err
			}
		}
		if inputSchema.Type == "" {
			inputSchema.Type = "object"
		}
		s.registry.Set(def.name, &toolEntry{
			name:        def.name,
			description: def.description,
			inputSchema: inputSchema,
			handler:     s.newToolHandler(def.name, def.execute),
		})
	}
	return nil
}

// newToolHandler wraps a tool executor with argument passing, per-invocation
// request ids and error-to-result translation. Failures surface as IsError
// results carrying a user-facing message, never as protocol errors.
func (s *Service) newToolHandler(name string, execute func(context.Context, map[string]interface{}) (string, error)) func(context.Context, *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
	return func(ctx context.Context, req *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
		requestID := uuid.New().String()
		logger := s.logger.With().Str("tool", name).Str("requestId", requestID).Logger()
		logger.Info().Msg("tool invoked")

		text, err := execute(ctx, req.Params.Arguments)
		res := &mcpschema.CallToolResult{}
		if err != nil {
			logger.Warn().Err(err).Msg("tool failed")
			res.IsError = conv.Pointer[bool](true)
			res.Content = append(res.Content, mcpschema.CallToolResultContentElem{
				Type: "text",
				Text: userMessage(err),
			})
			return res, nil
		}
		logger.Info().Msg("tool completed")
		res.Content = append(res.Content, mcpschema.CallToolResultContentElem{
			Type: "text",
			Text: text,
		})
		return res, nil
	}
}

// Tools returns the registered tools in the protocol representation, sorted
// by name for deterministic listings.
func (s *Service) Tools() serverproto.Tools {
	var result = make(serverproto.Tools, 0)
	for _, name := range s.registry.Keys() {
		entry := s.registry.Get(name)
		if entry == nil {
			continue
		}
		result = append(result, &serverproto.ToolEntry{
			Metadata: mcpschema.Tool{
				Name:        entry.name,
				Description: conv.Pointer[string](entry.description),
				InputSchema: entry.inputSchema,
			},
			Handler: entry.handler,
		})
	}
	return result
}

// ExecuteTool invokes a registered tool with the supplied arguments and
// returns the textual payload of its first content element.
func (s *Service) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	entry := s.registry.Get(name)
	if entry == nil {
		return "", errors.New("unknown tool: " + name)
	}
	request := &mcpschema.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args

	result, rpcErr := entry.handler(ctx, request)
	if rpcErr != nil {
		return "", errors.New(rpcErr.Message)
	}
	var text string
	if len(result.Content) > 0 {
		text = result.Content[0].Text
	}
	if result.IsError != nil && *result.IsError {
		return "", errors.New(text)
	}
	return text, nil
}
