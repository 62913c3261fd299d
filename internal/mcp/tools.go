package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/gorewood/cardview/internal/card"
	"github.com/gorewood/cardview/internal/render"
	"github.com/gorewood/cardview/internal/settings"
	"github.com/gorewood/cardview/internal/template"
)

// --- resolve_block ---

// ResolveInput is the input for the resolve_block tool.
type ResolveInput struct {
	Source string `json:"source" jsonschema:"block body; an optional cardview code fence is stripped"`
}

// ResolveOutput is the output for the resolve_block tool. A malformed
// block sets Error instead of View.
type ResolveOutput struct {
	View  *card.View `json:"view,omitempty"  jsonschema:"resolved cards"`
	Error string     `json:"error,omitempty" jsonschema:"error state shown instead of the cards"`
}

func handleResolve(deps Deps) mcp.ToolHandlerFor[ResolveInput, ResolveOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ResolveInput) (*mcp.CallToolResult, ResolveOutput, error) {
		view, err := deps.resolver().Resolve(ctx, input.Source)
		if err != nil {
			if !card.IsContentError(err) {
				return nil, ResolveOutput{}, fmt.Errorf("resolving block: %w", err)
			}
			return nil, ResolveOutput{Error: render.ErrorState(err)}, nil
		}
		return nil, ResolveOutput{View: view}, nil
	}
}

// --- render_block ---

// RenderInput is the input for the render_block tool.
type RenderInput struct {
	Source string `json:"source"           jsonschema:"block body; an optional cardview code fence is stripped"`
	Format string `json:"format,omitempty" jsonschema:"html (default) or term"`
	Width  int    `json:"width,omitempty"  jsonschema:"terminal width in cells for format=term (default 80)"`
}

// RenderOutput is the output for the render_block tool.
type RenderOutput struct {
	Output string `json:"output"          jsonschema:"rendered cards or the rendered error state"`
	Failed bool   `json:"failed"          jsonschema:"true when the block rendered its error state"`
	Error  string `json:"error,omitempty" jsonschema:"why the block failed"`
}

func handleRender(deps Deps) mcp.ToolHandlerFor[RenderInput, RenderOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RenderInput) (*mcp.CallToolResult, RenderOutput, error) {
		format := strings.ToLower(input.Format)
		if format == "" {
			format = "html"
		}
		if format != "html" && format != "term" {
			return nil, RenderOutput{}, fmt.Errorf("invalid format %q: must be html or term", input.Format)
		}

		view, err := deps.resolver().Resolve(ctx, input.Source)
		if err != nil && !card.IsContentError(err) {
			return nil, RenderOutput{}, fmt.Errorf("resolving block: %w", err)
		}

		out := RenderOutput{Failed: err != nil}
		if err != nil {
			out.Error = err.Error()
		}
		switch format {
		case "term":
			if err != nil {
				out.Output = render.TerminalError(err, false)
			} else {
				out.Output = render.TerminalString(view, render.TerminalOptions{Width: input.Width})
			}
		default:
			var buf bytes.Buffer
			if err != nil {
				err = render.ErrorHTML(&buf, err)
			} else {
				err = render.HTML(&buf, view)
			}
			if err != nil {
				return nil, RenderOutput{}, err
			}
			out.Output = buf.String()
		}
		return nil, out, nil
	}
}

// --- get_settings ---

// Setting is one global setting.
type Setting struct {
	Path    string `json:"path"     jsonschema:"dotted field path"`
	Label   string `json:"label"    jsonschema:"display label"`
	Value   any    `json:"value"    jsonschema:"effective value"`
	UserSet bool   `json:"user_set" jsonschema:"true when the user set the value rather than the default"`
}

// GetSettingsInput is the input for the get_settings tool.
type GetSettingsInput struct {
	Path string `json:"path,omitempty" jsonschema:"dotted field path such as cardStyle.cornerRadius.topLeft; empty lists overrides"`
}

// GetSettingsOutput is the output for the get_settings tool.
type GetSettingsOutput struct {
	Setting   *Setting  `json:"setting,omitempty"   jsonschema:"the requested setting"`
	Overrides []Setting `json:"overrides,omitempty" jsonschema:"every user-set field when no path is given"`
}

func handleGetSettings(deps Deps) mcp.ToolHandlerFor[GetSettingsInput, GetSettingsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GetSettingsInput) (*mcp.CallToolResult, GetSettingsOutput, error) {
		if input.Path != "" {
			s, err := lookup(deps.Settings, input.Path)
			if err != nil {
				return nil, GetSettingsOutput{}, err
			}
			return nil, GetSettingsOutput{Setting: &s}, nil
		}

		out := GetSettingsOutput{Overrides: []Setting{}}
		for _, p := range deps.Settings.Overrides() {
			s, err := lookup(deps.Settings, p)
			if err != nil {
				return nil, GetSettingsOutput{}, err
			}
			out.Overrides = append(out.Overrides, s)
		}
		return nil, out, nil
	}
}

func lookup(m *settings.Manager, path string) (Setting, error) {
	value, userSet, err := m.Get(path)
	if err != nil {
		return Setting{}, err
	}
	return Setting{Path: path, Label: settings.Label(path), Value: value, UserSet: userSet}, nil
}

// --- set_setting ---

// SetSettingInput is the input for the set_setting tool.
type SetSettingInput struct {
	Path  string `json:"path"            jsonschema:"dotted field path"`
	Value string `json:"value,omitempty" jsonschema:"new value; booleans as true/false"`
	Unset bool   `json:"unset,omitempty" jsonschema:"remove the user value instead of setting one"`
}

// SetSettingOutput is the output for the set_setting tool.
type SetSettingOutput struct {
	Setting Setting `json:"setting" jsonschema:"the setting after the change"`
}

func handleSetSetting(deps Deps) mcp.ToolHandlerFor[SetSettingInput, SetSettingOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SetSettingInput) (*mcp.CallToolResult, SetSettingOutput, error) {
		if input.Path == "" {
			return nil, SetSettingOutput{}, errors.New("path is required")
		}

		var err error
		if input.Unset {
			err = deps.Settings.Unset(ctx, input.Path)
		} else {
			err = deps.Settings.Set(ctx, input.Path, input.Value)
		}
		if err != nil {
			return nil, SetSettingOutput{}, err
		}
		deps.Logger.Debug("Setting changed over MCP", zap.String("path", input.Path), zap.Bool("unset", input.Unset))

		s, err := lookup(deps.Settings, input.Path)
		if err != nil {
			return nil, SetSettingOutput{}, err
		}
		return nil, SetSettingOutput{Setting: s}, nil
	}
}

// --- list_templates ---

// ListTemplatesInput is the input for the list_templates tool.
type ListTemplatesInput struct{}

// ListTemplatesOutput is the output for the list_templates tool.
type ListTemplatesOutput struct {
	Templates []template.Info `json:"templates" jsonschema:"available templates; earlier sources shadow later ones"`
}

func handleListTemplates(deps Deps) mcp.ToolHandlerFor[ListTemplatesInput, ListTemplatesOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListTemplatesInput) (*mcp.CallToolResult, ListTemplatesOutput, error) {
		if deps.Templates == nil {
			return nil, ListTemplatesOutput{Templates: []template.Info{}}, nil
		}
		infos, err := deps.Templates.List()
		if err != nil {
			return nil, ListTemplatesOutput{}, fmt.Errorf("listing templates: %w", err)
		}
		if infos == nil {
			infos = []template.Info{}
		}
		return nil, ListTemplatesOutput{Templates: infos}, nil
	}
}
