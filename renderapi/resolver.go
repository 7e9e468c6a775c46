package renderapi

import (
	"context"
	"regexp"
	"strings"
)

// TemplateKind identifies which family a template reference belongs to.
type TemplateKind string

const (
	// KindLibrary marks pre-built platform templates addressed by slug.
	KindLibrary TemplateKind = "library"
	// KindStudio marks user-authored templates addressed by numeric id or name.
	KindStudio TemplateKind = "studio"
)

var allDigits = regexp.MustCompile(`^\d+$`)

// IsLikelyStudioTemplate reports whether the reference looks like a numeric
// studio template id. Purely syntactic, the listings remain authoritative.
func IsLikelyStudioTemplate(templateID string) bool {
	return allDigits.MatchString(templateID)
}

// ResolveKind decides whether templateID refers to a library or a studio
// template. The checks are ordered by likelihood, not authority: all-digit
// references are checked against the studio listing first, everything else
// against the library listing first with the studio listing as a fallback.
// Every step re-fetches the relevant listing, nothing is cached.
//
// A listing that cannot be fetched does not abort resolution, the remaining
// steps still run. Only when no step matched does the first fetch error (if
// any) surface, so callers can tell "upstream says no" from "we couldn't
// tell".
func (c *Client) ResolveKind(ctx context.Context, apiKey, templateID string) (TemplateKind, error) {
	likelyStudio := IsLikelyStudioTemplate(templateID)
	var fetchErr error

	if likelyStudio {
		found, err := c.studioListingHas(ctx, apiKey, templateID)
		if err != nil {
			fetchErr = err
		} else if found {
			return KindStudio, nil
		}
	}

	templates, err := c.ListTemplates(ctx, apiKey)
	if err != nil {
		if fetchErr == nil {
			fetchErr = err
		}
	} else {
		for i := range templates {
			t := &templates[i]
			if t.ID.String() == templateID || t.TemplateID.String() == templateID {
				return KindLibrary, nil
			}
		}
	}

	if !likelyStudio {
		found, err := c.studioListingHas(ctx, apiKey, templateID)
		if err != nil {
			if fetchErr == nil {
				fetchErr = err
			}
		} else if found {
			return KindStudio, nil
		}
	}

	if fetchErr != nil {
		return "", fetchErr
	}
	return "", &Error{Kind: KindNotFound, Message: "template " + templateID + " not found in library or studio listings"}
}

// studioListingHas fetches the studio listing and matches by id or
// case-insensitive display name.
func (c *Client) studioListingHas(ctx context.Context, apiKey, templateID string) (bool, error) {
	templates, err := c.ListStudioTemplates(ctx, apiKey)
	if err != nil {
		return false, err
	}
	for i := range templates {
		t := &templates[i]
		if t.Identifier() == templateID || strings.EqualFold(t.DisplayName(), templateID) {
			return true, nil
		}
	}
	return false, nil
}

// ResolveStudioTemplateID resolves a studio template reference, which may be
// a numeric id or a display name, to its canonical numeric id. Numeric input
// short-circuits without a remote call.
func (c *Client) ResolveStudioTemplateID(ctx context.Context, apiKey, nameOrID string) (string, error) {
	if IsLikelyStudioTemplate(nameOrID) {
		return nameOrID, nil
	}
	templates, err := c.ListStudioTemplates(ctx, apiKey)
	if err != nil {
		return "", err
	}
	for i := range templates {
		t := &templates[i]
		if t.Identifier() == nameOrID || strings.EqualFold(t.DisplayName(), nameOrID) {
			return t.Identifier(), nil
		}
	}
	return "", &Error{Kind: KindNotFound, Message: "studio template " + nameOrID + " not found"}
}
