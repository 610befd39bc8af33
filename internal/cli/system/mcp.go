package system

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/julianstephens/bujo/internal/cli"
	"github.com/julianstephens/bujo/internal/logger"
	"github.com/julianstephens/bujo/internal/tools"
)

type McpCmd struct{}

func (c *McpCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Journal.CurrentUser(ctx.Context())
	if err != nil {
		return err
	}
	if _, err := ctx.Journal.EnsureProfile(ctx.Context()); err != nil {
		return err
	}

	srv := tools.New(ctx.Journal, ctx.Timezone())
	logger.Info("MCP server starting (stdio)", "user", user.ID)
	if err := srv.Run(ctx.Context(), &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
