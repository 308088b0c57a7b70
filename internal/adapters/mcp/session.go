// Package mcp exposes the interactions menu as MCP tools
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"chemint/internal/adapters/headless"
	"chemint/internal/application"
	"chemint/internal/domain"
	"chemint/internal/ports"
)

// Controller is the menu logic the tools drive
type Controller interface {
	ToggleStructure(ctx context.Context, id string) error
	ToggleLigand(ctx context.Context, id string) error
	ToggleCategoryVisibility(ctx context.Context, category string) error
	SetCategoryColor(ctx context.Context, category, color string) error
	ToggleAll(ctx context.Context) error
	Submit(ctx context.Context) error
	Menu() ports.Menu
	Lines() []domain.Line
	Categories() []domain.Category
}

// Session pairs a controller with the presenter it reports to
type Session struct {
	Controller Controller
	Presenter  *headless.Presenter
}

// outcome reports an action: the error if any, otherwise the
// notifications it produced
func (s *Session) outcome(err error, fallback string) (*mcp.CallToolResult, error) {
	notes := s.Presenter.Drain()
	if err != nil {
		return toolError(err)
	}

	var sb strings.Builder
	failed := false
	for _, n := range notes {
		fmt.Fprintf(&sb, "[%s] %s\n", n.Severity, n.Message)
		failed = failed || n.Severity == ports.SeverityError
	}
	if sb.Len() == 0 {
		sb.WriteString(fallback)
	}
	text := strings.TrimSpace(sb.String())
	if failed {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(application.UserMessage(err)), nil
}

func formatButtons(list ports.List) string {
	if len(list.Items) == 0 {
		return "No results."
	}
	var sb strings.Builder
	for _, b := range list.Items {
		mark := " "
		if b.Selected {
			mark = "*"
		}
		fmt.Fprintf(&sb, "%s %s  %s", mark, b.ID, b.Text)
		if b.Unusable {
			sb.WriteString("  (busy)")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
