package cmd

import (
	"context"
	"fmt"

	"github.com/renderhub/render-mcp/renderapi"
)

// ResolveCmd resolves a template reference against the live listings and
// prints its kind plus, for studio templates, the canonical numeric id.
type ResolveCmd struct {
	ID     string `short:"t" long:"template" positional-arg-name:"template" description:"Template reference" required:"yes"`
	APIKey string `short:"k" long:"key" description:"API key override"`
}

func (c *ResolveCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	apiKey := c.APIKey
	if apiKey == "" {
		apiKey = svc.Config().Upstream.APIKey
	}

	ctx := context.Background()
	kind, err := svc.Client().ResolveKind(ctx, apiKey, c.ID)
	if err != nil {
		return err
	}
	if kind == renderapi.KindStudio {
		id, err := svc.Client().ResolveStudioTemplateID(ctx, apiKey, c.ID)
		if err != nil {
			return err
		}
		fmt.Printf("studio\t%s\n", id)
		return nil
	}
	fmt.Printf("library\t%s\n", c.ID)
	return nil
}
