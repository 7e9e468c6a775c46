package renderapi

import (
	"encoding/json"
	"strings"
)

// FlexString unmarshals both JSON strings and numbers into a string value.
// Studio template ids come back as numbers, library ids as strings.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// Template describes one entry of a library or studio template listing.
// Listings are inconsistent about field names, hence the paired fields.
type Template struct {
	ID          FlexString `json:"id,omitempty"`
	TemplateID  FlexString `json:"template_id,omitempty"`
	Name        string     `json:"name,omitempty"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Identifier returns the canonical id of the template, whichever listing
// field carried it.
func (t *Template) Identifier() string {
	if t.ID != "" {
		return t.ID.String()
	}
	return t.TemplateID.String()
}

// DisplayName returns the human readable name of the template.
func (t *Template) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Title
}

// ModificationField declares one customizable input slot of a template.
type ModificationField struct {
	Key         string `json:"key,omitempty"`
	ID          string `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
	HelpText    string `json:"helpText,omitempty"`
	Example     string `json:"example,omitempty"`
	Type        string `json:"type,omitempty"`
}

// FieldKey returns the field name under either naming convention.
func (m *ModificationField) FieldKey() string {
	if m.Key != "" {
		return m.Key
	}
	return m.ID
}

// FieldDescription returns the field description under either naming
// convention.
func (m *ModificationField) FieldDescription() string {
	if m.Description != "" {
		return m.Description
	}
	return m.HelpText
}

// ResponseSpec selects how the upstream should deliver the rendered asset.
type ResponseSpec struct {
	Type   string `json:"type,omitempty"` // base64 | url | binary
	Format string `json:"format,omitempty"`
}

// GenerateRequest is the POST body for library template generation.
type GenerateRequest struct {
	TemplateID    string         `json:"template_id"`
	Modifications map[string]any `json:"modifications,omitempty"`
	Response      *ResponseSpec  `json:"response,omitempty"`
	Scale         float64        `json:"scale,omitempty"`
	PDFOptions    map[string]any `json:"pdf_options,omitempty"`
	VideoOptions  map[string]any `json:"video_options,omitempty"`
	WebhookURL    string         `json:"webhook_url,omitempty"`
}

// StudioRenderRequest is the POST body for studio template rendering. The
// studio endpoints use camelCase keys, unlike the library ones.
type StudioRenderRequest struct {
	TemplateID    string         `json:"templateId"`
	Modifications map[string]any `json:"modifications,omitempty"`
	Response      *ResponseSpec  `json:"response,omitempty"`
	Scale         float64        `json:"scale,omitempty"`
	WebhookURL    string         `json:"webhookUrl,omitempty"`
}

// GenerateResponse is the upstream reply to either generation endpoint.
type GenerateResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"` // base64 payload
	URL     string `json:"url,omitempty"`
	TaskID  string `json:"task_id,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// templateList is the envelope of both listing endpoints.
type templateList struct {
	Templates []Template `json:"templates"`
}

// modificationList is the envelope of both modification discovery endpoints.
type modificationList struct {
	Modifications []ModificationField `json:"modifications"`
}

// RenderStatus describes the state of an asynchronous render task.
type RenderStatus struct {
	TaskID string `json:"task_id"`
	Status string `json:"status,omitempty"`
	URL    string `json:"url,omitempty"`
}
