package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/renderhub/render-mcp/internal/conv"
	"github.com/renderhub/render-mcp/renderapi"
)

// GenerateImageInput is the argument object shared by the three generation
// tools. TemplateID accepts a library slug, a numeric studio id or a studio
// display name depending on the tool.
type GenerateImageInput struct {
	TemplateID    string                 `json:"templateId" description:"Template reference: library slug, studio id or studio name"`
	APIKey        string                 `json:"apiKey,omitempty" description:"API key override; falls back to the configured default"`
	Modifications map[string]interface{} `json:"modifications,omitempty" description:"Field values to apply to the template"`
	ResponseType  string                 `json:"responseType,omitempty" description:"How to deliver the asset: url, base64 or binary"`
	Format        string                 `json:"format,omitempty" description:"Output format, e.g. png, jpg, pdf, mp4"`
	Scale         float64                `json:"scale,omitempty" description:"Output scale factor"`
	PDFOptions    map[string]interface{} `json:"pdfOptions,omitempty" description:"PDF rendering options"`
	VideoOptions  map[string]interface{} `json:"videoOptions,omitempty" description:"Video rendering options"`
	WebhookURL    string                 `json:"webhookUrl,omitempty" description:"Webhook notified when an async render completes"`
}

// ListTemplatesInput carries the optional API key override for listings.
type ListTemplatesInput struct {
	APIKey string `json:"apiKey,omitempty" description:"API key override; falls back to the configured default"`
}

// ListModificationsInput identifies the template whose fields to discover.
type ListModificationsInput struct {
	TemplateID string `json:"templateId" description:"Template reference: library slug, studio id or studio name"`
	APIKey     string `json:"apiKey,omitempty" description:"API key override; falls back to the configured default"`
}

// CheckStatusInput identifies an asynchronous render task.
type CheckStatusInput struct {
	TaskID string `json:"taskId" description:"Task id returned by a generation call"`
	APIKey string `json:"apiKey,omitempty" description:"API key override; falls back to the configured default"`
}

// FetchDocsInput is empty, the docs tool takes no arguments.
type FetchDocsInput struct{}

// apiKey resolves the effective API key: explicit override first, then the
// configured default, validated either way.
func (s *Service) apiKey(override string) (string, error) {
	key := override
	if key == "" {
		key = s.config.Upstream.APIKey
	}
	check := renderapi.ValidateAPIKey(key, s.config.Upstream.MaxAPIKeyLength)
	if !check.Valid {
		return "", renderapi.NewError(renderapi.KindValidation, check.Err)
	}
	return strings.TrimSpace(key), nil
}

// decodeInput coerces raw tool arguments into the typed input struct.
func decodeInput(raw map[string]interface{}, out any) error {
	if err := conv.Convert(raw, out); err != nil {
		return renderapi.NewError(renderapi.KindValidation, fmt.Sprintf("invalid arguments: %v", err))
	}
	return nil
}

// generateImage resolves the template kind first and dispatches to the
// library or studio path.
func (s *Service) generateImage(ctx context.Context, raw map[string]interface{}) (string, error) {
	var input GenerateImageInput
	if err := decodeInput(raw, &input); err != nil {
		return "", err
	}
	apiKey, err := s.apiKey(input.APIKey)
	if err != nil {
		return "", err
	}
	check := renderapi.ValidateTemplateID(input.TemplateID, s.config.Upstream.MaxTemplateIDLength)
	if !check.Valid {
		return "", renderapi.NewError(renderapi.KindValidation, check.Err)
	}
	input.TemplateID = check.Sanitized

	kind, err := s.client.ResolveKind(ctx, apiKey, input.TemplateID)
	if err != nil {
		return "", err
	}
	if kind == renderapi.KindStudio {
		return s.renderStudio(ctx, apiKey, &input)
	}
	return s.renderLibrary(ctx, apiKey, &input)
}

// generateLibraryImage skips resolution and goes straight to the library
// generation endpoint.
func (s *Service) generateLibraryImage(ctx context.Context, raw map[string]interface{}) (string, error) {
	var input GenerateImageInput
	if err := decodeInput(raw, &input); err != nil {
		return "", err
	}
	apiKey, err := s.apiKey(input.APIKey)
	if err != nil {
		return "", err
	}
	check := renderapi.ValidateTemplateID(input.TemplateID, s.config.Upstream.MaxTemplateIDLength)
	if !check.Valid {
		return "", renderapi.NewError(renderapi.KindValidation, check.Err)
	}
	input.TemplateID = check.Sanitized
	return s.renderLibrary(ctx, apiKey, &input)
}

// generateStudioImage resolves studio names to numeric ids, auto-maps URL
// inputs and renders through the studio endpoint. Studio names may contain
// spaces, so only the API key is shape-checked here.
func (s *Service) generateStudioImage(ctx context.Context, raw map[string]interface{}) (string, error) {
	var input GenerateImageInput
	if err := decodeInput(raw, &input); err != nil {
		return "", err
	}
	apiKey, err := s.apiKey(input.APIKey)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input.TemplateID) == "" {
		return "", renderapi.NewError(renderapi.KindValidation, "template id must not be empty")
	}
	input.TemplateID = strings.TrimSpace(input.TemplateID)
	return s.renderStudio(ctx, apiKey, &input)
}

func (s *Service) renderLibrary(ctx context.Context, apiKey string, input *GenerateImageInput) (string, error) {
	request := &renderapi.GenerateRequest{
		TemplateID:    input.TemplateID,
		Modifications: input.Modifications,
		Response:      responseSpec(input),
		Scale:         input.Scale,
		PDFOptions:    input.PDFOptions,
		VideoOptions:  input.VideoOptions,
		WebhookURL:    input.WebhookURL,
	}
	response, err := s.client.GenerateImage(ctx, apiKey, request)
	if err != nil {
		return "", err
	}
	return formatGeneration("library template "+input.TemplateID, response, responseType(input)), nil
}

func (s *Service) renderStudio(ctx context.Context, apiKey string, input *GenerateImageInput) (string, error) {
	templateID, err := s.client.ResolveStudioTemplateID(ctx, apiKey, input.TemplateID)
	if err != nil {
		return "", err
	}
	modifications := s.client.AutoMapFields(ctx, apiKey, templateID, input.Modifications)
	request := &renderapi.StudioRenderRequest{
		TemplateID:    templateID,
		Modifications: modifications,
		Response:      responseSpec(input),
		Scale:         input.Scale,
		WebhookURL:    input.WebhookURL,
	}
	response, err := s.client.RenderStudio(ctx, apiKey, request)
	if err != nil {
		return "", err
	}
	return formatGeneration("studio template "+templateID, response, responseType(input)), nil
}

func (s *Service) listTemplates(ctx context.Context, raw map[string]interface{}) (string, error) {
	var input ListTemplatesInput
	if err := decodeInput(raw, &input); err != nil {
		return "", err
	}
	apiKey, err := s.apiKey(input.APIKey)
	if err != nil {
		return "", err
	}
	templates, err := s.client.ListTemplates(ctx, apiKey)
	if err != nil {
		return "", err
	}
	return formatTemplates("library templates", templates), nil
}

func (s *Service) listStudioTemplates(ctx context.Context, raw map[string]interface{}) (string, error) {
	var input ListTemplatesInput
	if err := decodeInput(raw, &input); err != nil {
		return "", err
	}
	apiKey, err := s.apiKey(input.APIKey)
	if err != nil {
		return "", err
	}
	templates, err := s.client.ListStudioTemplates(ctx, apiKey)
	if err != nil {
		return "", err
	}
	return formatTemplates("studio templates", templates), nil
}

// listModifications resolves the template kind, fetches the declared fields
// from the matching endpoint and renders them one per line.
func (s *Service) listModifications(ctx context.Context, raw map[string]interface{}) (string, error) {
	var input ListModificationsInput
	if err := decodeInput(raw, &input); err != nil {
		return "", err
	}
	apiKey, err := s.apiKey(input.APIKey)
	if err != nil {
		return "", err
	}
	check := renderapi.ValidateTemplateID(input.TemplateID, s.config.Upstream.MaxTemplateIDLength)
	if !check.Valid {
		return "", renderapi.NewError(renderapi.KindValidation, check.Err)
	}
	templateID := check.Sanitized

	kind, err := s.client.ResolveKind(ctx, apiKey, templateID)
	if err != nil {
		return "", err
	}
	var fields []renderapi.ModificationField
	if kind == renderapi.KindStudio {
		studioID, err := s.client.ResolveStudioTemplateID(ctx, apiKey, templateID)
		if err != nil {
			return "", err
		}
		fields, err = s.client.StudioModifications(ctx, apiKey, studioID)
		if err != nil {
			return "", err
		}
	} else {
		fields, err = s.client.TemplateModifications(ctx, apiKey, templateID)
		if err != nil {
			return "", err
		}
	}
	return formatModifications(templateID, string(kind), fields), nil
}

func (s *Service) checkRenderStatus(ctx context.Context, raw map[string]interface{}) (string, error) {
	var input CheckStatusInput
	if err := decodeInput(raw, &input); err != nil {
		return "", err
	}
	apiKey, err := s.apiKey(input.APIKey)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input.TaskID) == "" {
		return "", renderapi.NewError(renderapi.KindValidation, "task id must not be empty")
	}
	status, err := s.client.RenderTaskStatus(ctx, apiKey, strings.TrimSpace(input.TaskID))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Task %s: %s\n", status.TaskID, status.Status)
	if status.URL != "" {
		fmt.Fprintf(&b, "URL: %s\n", status.URL)
	}
	return b.String(), nil
}

func (s *Service) fetchAPIDocs(_ context.Context, _ map[string]interface{}) (string, error) {
	return apiDocs, nil
}

func responseType(input *GenerateImageInput) string {
	if input.ResponseType == "" {
		return "url"
	}
	return input.ResponseType
}

func responseSpec(input *GenerateImageInput) *renderapi.ResponseSpec {
	return &renderapi.ResponseSpec{Type: responseType(input), Format: input.Format}
}

// formatGeneration renders the upstream reply for the requested delivery
// mode. Binary deliveries arrive base64-encoded over the text content.
func formatGeneration(subject string, response *renderapi.GenerateResponse, responseType string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rendered %s.\n", subject)
	switch responseType {
	case "base64":
		if response.Data != "" {
			fmt.Fprintf(&b, "Base64 data:\n%s\n", response.Data)
		} else if response.URL != "" {
			fmt.Fprintf(&b, "URL: %s\n", response.URL)
		}
	case "binary":
		if response.Data != "" {
			fmt.Fprintf(&b, "Binary payload (base64-encoded):\n%s\n", response.Data)
		} else if response.URL != "" {
			fmt.Fprintf(&b, "URL: %s\n", response.URL)
		}
	default:
		if response.URL != "" {
			fmt.Fprintf(&b, "URL: %s\n", response.URL)
		} else if response.Data != "" {
			fmt.Fprintf(&b, "Base64 data:\n%s\n", response.Data)
		}
	}
	if response.TaskID != "" {
		fmt.Fprintf(&b, "Task id: %s\n", response.TaskID)
	}
	if response.Status != "" {
		fmt.Fprintf(&b, "Status: %s\n", response.Status)
	}
	return b.String()
}

func formatTemplates(subject string, templates []renderapi.Template) string {
	if len(templates) == 0 {
		return "No " + subject + " available.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Available %s (%d):\n", subject, len(templates))
	for i := range templates {
		t := &templates[i]
		fmt.Fprintf(&b, "- %s", t.Identifier())
		if name := t.DisplayName(); name != "" {
			fmt.Fprintf(&b, ": %s", name)
		}
		if t.Description != "" {
			fmt.Fprintf(&b, " (%s)", t.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatModifications(templateID, kind string, fields []renderapi.ModificationField) string {
	if len(fields) == 0 {
		return fmt.Sprintf("Template %s (%s) declares no modification fields.\n", templateID, kind)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Modification fields of %s template %s (%d):\n", kind, templateID, len(fields))
	for i := range fields {
		f := &fields[i]
		fmt.Fprintf(&b, "- %s", f.FieldKey())
		if description := f.FieldDescription(); description != "" {
			fmt.Fprintf(&b, ": %s", description)
		}
		if f.Example != "" {
			fmt.Fprintf(&b, " (e.g. %s)", f.Example)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// userMessage translates the error taxonomy into replies an agent can act
// on without seeing stack traces or status codes.
func userMessage(err error) string {
	message := renderapi.MessageOf(err)
	switch renderapi.KindOf(err) {
	case renderapi.KindValidation:
		return "Invalid input: " + message
	case renderapi.KindNotFound:
		return message + ". Use list_templates or list_studio_templates to discover valid references."
	case renderapi.KindUnauthorized:
		return "The render API rejected the request: " + message + ". Check your API key."
	case renderapi.KindTimeout:
		return "The render API did not respond in time. Try again, or check your API key and template id."
	default:
		return "Failed to call the render API: " + message + ". Check your API key and template id."
	}
}
