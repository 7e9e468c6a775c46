// Package renderapi implements the client for the hosted render API. It
// covers input validation, the retrying HTTP request wrapper, template kind
// resolution (library vs studio) and the best-effort auto-mapping of
// URL-valued inputs onto image-like modification fields.
package renderapi
