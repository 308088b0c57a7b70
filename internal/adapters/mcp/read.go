package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"chemint/internal/domain"
)

// RegisterReadTools adds the tools that only inspect the menu.
func RegisterReadTools(s *server.MCPServer, sess *Session) {
	s.AddTool(listStructuresTool(), sess.listStructuresHandler)
	s.AddTool(listLigandsTool(), sess.listLigandsHandler)
	s.AddTool(listCategoriesTool(), sess.listCategoriesHandler)
	s.AddTool(listLinesTool(), sess.listLinesHandler)
}

// --- list_structures ---

func listStructuresTool() mcp.Tool {
	return mcp.NewTool("list_structures",
		mcp.WithDescription("List the structures that can be picked as the complex. The selected one is marked with *."),
	)
}

func (s *Session) listStructuresHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatButtons(s.Controller.Menu().Structures)), nil
}

// --- list_ligands ---

func listLigandsTool() mcp.Tool {
	return mcp.NewTool("list_ligands",
		mcp.WithDescription("List the ligands available for the selected complex: other structures first, then its hetero residues."),
	)
}

func (s *Session) listLigandsHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatButtons(s.Controller.Menu().Ligands)), nil
}

// --- list_categories ---

func listCategoriesTool() mcp.Tool {
	return mcp.NewTool("list_categories",
		mcp.WithDescription("List interaction categories with their visibility and line color."),
	)
}

func (s *Session) listCategoriesHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	for _, c := range s.Controller.Categories() {
		state := "hidden"
		if c.Visible {
			state = "visible"
		}
		fmt.Fprintf(&sb, "%-14s %-7s %-8s %s\n", c.Name, state, c.Color, c.Label)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- list_lines ---

func listLinesTool() mcp.Tool {
	return mcp.NewTool("list_lines",
		mcp.WithDescription("List the interaction lines currently drawn, optionally for one category."),
		mcp.WithString("category",
			mcp.Description("Category name (e.g. hbond, ionic). Omit for all."),
		),
	)
}

func (s *Session) listLinesHandler(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")
	if category != "" && !domain.IsCategory(category) {
		return toolError(fmt.Errorf("%w: %s", domain.ErrUnknownCategory, category))
	}

	var sb strings.Builder
	for _, l := range s.Controller.Lines() {
		if category != "" && l.Category != category {
			continue
		}
		fmt.Fprintf(&sb, "%s  %s  %s  %.2f  %s\n", l.Category, l.From.Label(), l.To.Label(), l.Distance, l.Color.Hex())
	}
	if sb.Len() == 0 {
		return mcp.NewToolResultText("No lines drawn."), nil
	}
	return mcp.NewToolResultText(sb.String()), nil
}
