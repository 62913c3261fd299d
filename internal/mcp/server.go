// Package mcp provides a Model Context Protocol server for cardview.
// It exposes block resolution, rendering, settings and templates as MCP
// tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/gorewood/cardview/internal/card"
	"github.com/gorewood/cardview/internal/settings"
	"github.com/gorewood/cardview/internal/template"
	"github.com/gorewood/cardview/internal/vault"
)

// Deps are the services the tools work against. Vault may be nil.
type Deps struct {
	Vault     vault.Vault
	Templates *template.Loader
	Settings  *settings.Manager
	Logger    *zap.Logger
}

// resolver builds a resolver over the current global tier, so settings
// changed through set_setting apply to the next render.
func (d Deps) resolver() *card.Resolver {
	opts := card.Options{
		Vault:  d.Vault,
		Global: d.Settings.Global(),
		Logger: d.Logger,
	}
	if d.Templates != nil {
		opts.Templates = d.Templates
	}
	return card.NewResolver(opts)
}

// NewServer creates an MCP server with all cardview tools registered.
func NewServer(version string, deps Deps) *mcp.Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "cardview",
		Version: version,
	}, nil)
	registerTools(server, deps)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations marks tools that change stored settings. Setting the
// same value twice has no further effect.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_block",
		Description: "Parse a cardview block (a JSON array of cards, or {template, cards}) and return every card with its fully resolved style: built-in defaults, global settings, the template and inline values merged per field.",
		Annotations: readOnlyAnnotations(),
	}, handleResolve(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_block",
		Description: "Render a cardview block as an HTML fragment (format=html, default) or terminal text (format=term). Malformed blocks render the error state.",
		Annotations: readOnlyAnnotations(),
	}, handleRender(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_settings",
		Description: "Show global settings. With a path such as cardStyle.width, returns that field's effective value and whether the user set it; without one, lists every user override.",
		Annotations: readOnlyAnnotations(),
	}, handleGetSettings(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_setting",
		Description: "Set one global setting by dotted path, e.g. path=iconStyle.size value=lg. With unset=true the user value is removed and the default shows through again.",
		Annotations: writeAnnotations(),
	}, handleSetSetting(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_templates",
		Description: "List the style templates a block can reference by name, with their source (vault, global or built-in).",
		Annotations: readOnlyAnnotations(),
	}, handleListTemplates(deps))
}
