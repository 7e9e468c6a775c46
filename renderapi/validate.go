package renderapi

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

var templateIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// TemplateIDValidation is the outcome of ValidateTemplateID. Sanitized holds
// the trimmed identifier when the input is valid.
type TemplateIDValidation struct {
	Valid     bool
	Sanitized string
	Err       string
}

// APIKeyValidation is the outcome of ValidateAPIKey.
type APIKeyValidation struct {
	Valid bool
	Err   string
}

// ValidateTemplateID checks the shape of a template reference: non-empty
// after trimming, at most maxLen characters and limited to the
// [A-Za-z0-9_-] alphabet.
func ValidateTemplateID(id string, maxLen int) TemplateIDValidation {
	trimmed := strings.TrimSpace(id)
	var errMsg string
	switch {
	case trimmed == "":
		errMsg = "template id must not be empty"
	case len(trimmed) > maxLen:
		errMsg = fmt.Sprintf("template id exceeds maximum length of %d characters", maxLen)
	case !templateIDPattern.MatchString(trimmed):
		errMsg = "template id may only contain letters, digits, underscore and hyphen"
	}
	if errMsg != "" {
		log.Debug().Str("templateId", trimmed).Str("reason", errMsg).Msg("template id rejected")
		return TemplateIDValidation{Err: errMsg}
	}
	log.Debug().Str("templateId", trimmed).Msg("template id accepted")
	return TemplateIDValidation{Valid: true, Sanitized: trimmed}
}

// ValidateAPIKey checks the shape of an API key. The check is length-only,
// no cryptographic structure is assumed.
func ValidateAPIKey(key string, maxLen int) APIKeyValidation {
	trimmed := strings.TrimSpace(key)
	var errMsg string
	switch {
	case trimmed == "":
		errMsg = "api key is missing"
	case len(trimmed) < 10:
		errMsg = "api key is too short to be valid"
	case len(trimmed) > maxLen:
		errMsg = fmt.Sprintf("api key exceeds maximum length of %d characters", maxLen)
	}
	if errMsg != "" {
		log.Debug().Str("reason", errMsg).Msg("api key rejected")
		return APIKeyValidation{Err: errMsg}
	}
	return APIKeyValidation{Valid: true}
}
