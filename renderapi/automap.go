package renderapi

import (
	"context"
	"net/url"
	"sort"
	"strings"
)

// imageRoleTokens drives the heuristic matching of modification fields to
// the image slot role. A field whose key or description contains any of
// these tokens (case-insensitive) is considered image-like.
var imageRoleTokens = []string{"image", "url", "photo", "picture", "media", "src"}

// IsURL reports whether s parses as an absolute http(s) URL with a host.
func IsURL(s string) bool {
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

// matchesImageRole reports whether the declared field looks like an image
// slot according to the role token table.
func matchesImageRole(field *ModificationField) bool {
	key := strings.ToLower(field.FieldKey())
	description := strings.ToLower(field.FieldDescription())
	for _, token := range imageRoleTokens {
		if strings.Contains(key, token) || strings.Contains(description, token) {
			return true
		}
	}
	return false
}

// AutoMapFields re-keys URL-valued inputs onto the declared modification
// field that most plausibly expects an image. The heuristic is best-effort
// and never fails the caller: when the modification listing cannot be
// fetched, or the template declares no fields, the input is returned
// unchanged. Disabled clients short-circuit to the identity function.
func (c *Client) AutoMapFields(ctx context.Context, apiKey, templateID string, fields map[string]any) map[string]any {
	if !c.options.AutoMap || len(fields) == 0 {
		return fields
	}
	declared, err := c.StudioModifications(ctx, apiKey, templateID)
	if err != nil {
		c.logger.Warn().Str("templateId", templateID).Err(err).Msg("auto-map skipped, modification fetch failed")
		return fields
	}
	if len(declared) == 0 {
		c.logger.Debug().Str("templateId", templateID).Msg("auto-map no-op, template declares no fields")
		return fields
	}
	mapped, moves := mapURLFields(declared, fields)
	for from, to := range moves {
		c.logger.Info().Str("templateId", templateID).Str("from", from).Str("to", to).Msg("auto-mapped url field")
	}
	return mapped
}

// keyMatchesImageRole reports whether an input key itself carries one of the
// role tokens.
func keyMatchesImageRole(key string) bool {
	lower := strings.ToLower(key)
	for _, token := range imageRoleTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// mapURLFields is the pure core of the heuristic. It returns the re-keyed
// map and a record of performed moves (input key -> declared key).
//
// Pass one moves every URL-valued input whose own key carries a role token
// onto the first image-like declared field, skipping targets that are
// already populated. Pass two handles the leftover: when exactly one URL
// input remains and exactly one image-like declared field is still vacant,
// the two are paired even though their names share nothing. Non-URL values
// always pass through untouched.
func mapURLFields(declared []ModificationField, fields map[string]any) (map[string]any, map[string]string) {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	moves := map[string]string{}

	// Deterministic iteration keeps the heuristic reproducible.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var unmappedURLKeys []string
	for _, key := range keys {
		value, ok := out[key]
		if !ok {
			continue // moved away by an earlier pairing
		}
		text, isString := value.(string)
		if !isString || !IsURL(text) {
			continue
		}
		if !keyMatchesImageRole(key) {
			unmappedURLKeys = append(unmappedURLKeys, key)
			continue
		}
		target := findImageField(declared, key)
		if target == "" {
			unmappedURLKeys = append(unmappedURLKeys, key)
			continue
		}
		if target == key {
			continue
		}
		if _, taken := out[target]; taken {
			unmappedURLKeys = append(unmappedURLKeys, key)
			continue
		}
		out[target] = text
		delete(out, key)
		moves[key] = target
	}

	// Fallback: a single leftover URL and a single vacant image-like slot are
	// paired regardless of naming. Inherited behavior, can mis-assign when the
	// names are genuinely unrelated.
	if len(unmappedURLKeys) == 1 {
		var vacant []string
		for i := range declared {
			f := &declared[i]
			if !matchesImageRole(f) {
				continue
			}
			if _, taken := out[f.FieldKey()]; taken {
				continue
			}
			vacant = append(vacant, f.FieldKey())
		}
		if len(vacant) == 1 {
			key := unmappedURLKeys[0]
			out[vacant[0]] = out[key]
			delete(out, key)
			moves[key] = vacant[0]
		}
	}

	return out, moves
}

// findImageField returns the key of the first declared image-like field. A
// declared field whose key equals the input key wins outright so values that
// already sit in the right slot stay put.
func findImageField(declared []ModificationField, inputKey string) string {
	for i := range declared {
		if declared[i].FieldKey() == inputKey && matchesImageRole(&declared[i]) {
			return inputKey
		}
	}
	for i := range declared {
		if matchesImageRole(&declared[i]) {
			return declared[i].FieldKey()
		}
	}
	return ""
}
