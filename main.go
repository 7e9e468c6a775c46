package main

import (
	"os"

	"github.com/renderhub/render-mcp/cmd"
)

func main() {
	cmd.Run(os.Args[1:])
}
