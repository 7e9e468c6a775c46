// Package mcp wires the render API client into the MCP protocol
// implementation.  Its central Service type loads configuration, builds the
// upstream client, registers the generation and discovery tools and can
// expose them over an MCP server.
package mcp
