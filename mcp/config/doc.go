// Package config defines the YAML/JSON configuration model that can be passed
// to the MCP service on startup as well as helper functions to load,
// default and validate the configuration.
package config
