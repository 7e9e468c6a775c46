package cmd

import (
	"fmt"
	"sort"

	"github.com/renderhub/render-mcp/internal/conv"
)

// ListToolsCmd prints every registered tool with its description.
type ListToolsCmd struct{}

func (c *ListToolsCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	tools := svc.Tools()
	// Sorting for deterministic output (helpful for tests & scripting).
	sort.Slice(tools, func(i, j int) bool { return tools[i].Metadata.Name < tools[j].Metadata.Name })
	for _, t := range tools {
		fmt.Printf("%s\t%s\n", t.Metadata.Name, conv.Dereference[string](t.Metadata.Description))
	}
	return nil
}
