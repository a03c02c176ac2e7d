package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pipsimon/air-remote-mediator/internal"
)

// Represents the 'air-remote-mediator version' command.
type VersionCmd struct {
	JSON bool `help:"Print the build information as JSON."`
}

// Executes the version command.
func (c *VersionCmd) Run(ctx context.Context) error {
	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(internal.Build())
	}
	fmt.Println(internal.VersionString())
	return nil
}
