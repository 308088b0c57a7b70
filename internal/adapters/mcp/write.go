package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"chemint/internal/application"
	"chemint/internal/domain"
)

// RegisterWriteTools adds the tools that change the menu or the scene.
func RegisterWriteTools(s *server.MCPServer, sess *Session) {
	s.AddTool(selectStructureTool(), sess.selectStructureHandler)
	s.AddTool(selectLigandTool(), sess.selectLigandHandler)
	s.AddTool(toggleCategoryTool(), sess.toggleCategoryHandler)
	s.AddTool(setCategoryColorTool(), sess.setCategoryColorHandler)
	s.AddTool(toggleAllTool(), sess.toggleAllHandler)
	s.AddTool(calculateTool(), sess.calculateHandler)
}

// --- select_structure ---

func selectStructureTool() mcp.Tool {
	return mcp.NewTool("select_structure",
		mcp.WithDescription("Select (or deselect, if already selected) the complex and extract its ligands."),
		mcp.WithString("structure",
			mcp.Description("Structure id from list_structures (e.g. structure:0) or its name (e.g. 1tyl)"),
			mcp.Required(),
		),
	)
}

func (s *Session) selectStructureHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b, err := application.ResolveButton(s.Controller.Menu().Structures, req.GetString("structure", ""))
	if err != nil {
		return toolError(err)
	}
	err = s.Controller.ToggleStructure(ctx, b.ID)
	return s.outcome(err, fmt.Sprintf("Toggled %s", b.Text))
}

// --- select_ligand ---

func selectLigandTool() mcp.Tool {
	return mcp.NewTool("select_ligand",
		mcp.WithDescription("Select (or deselect) the ligand among the entries of list_ligands."),
		mcp.WithString("ligand",
			mcp.Description("Ligand id from list_ligands or its label (e.g. STR, STR (B))"),
			mcp.Required(),
		),
	)
}

func (s *Session) selectLigandHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b, err := application.ResolveButton(s.Controller.Menu().Ligands, req.GetString("ligand", ""))
	if err != nil {
		return toolError(err)
	}
	err = s.Controller.ToggleLigand(ctx, b.ID)
	return s.outcome(err, fmt.Sprintf("Toggled %s", b.Text))
}

// --- toggle_category ---

func toggleCategoryTool() mcp.Tool {
	return mcp.NewTool("toggle_category",
		mcp.WithDescription("Show or hide the lines of one interaction category."),
		mcp.WithString("category",
			mcp.Description("Category name from list_categories"),
			mcp.Required(),
		),
	)
}

func (s *Session) toggleCategoryHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")
	err := s.Controller.ToggleCategoryVisibility(ctx, category)
	return s.outcome(err, fmt.Sprintf("Toggled %s", category))
}

// --- set_category_color ---

func setCategoryColorTool() mcp.Tool {
	colors := make([]string, len(domain.Palette))
	for i, c := range domain.Palette {
		colors[i] = c.Name
	}
	return mcp.NewTool("set_category_color",
		mcp.WithDescription("Change the line color of one interaction category."),
		mcp.WithString("category",
			mcp.Description("Category name from list_categories"),
			mcp.Required(),
		),
		mcp.WithString("color",
			mcp.Description("Palette color name"),
			mcp.Enum(colors...),
			mcp.Required(),
		),
	)
}

func (s *Session) setCategoryColorHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")
	color := req.GetString("color", "")
	err := s.Controller.SetCategoryColor(ctx, category, color)
	return s.outcome(err, fmt.Sprintf("%s is now %s", category, color))
}

// --- toggle_all ---

func toggleAllTool() mcp.Tool {
	return mcp.NewTool("toggle_all",
		mcp.WithDescription("Hide every category, or show every category when all are hidden."),
	)
}

func (s *Session) toggleAllHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	err := s.Controller.ToggleAll(ctx)
	return s.outcome(err, s.Controller.Menu().ToggleAll.Text)
}

// --- calculate ---

func calculateTool() mcp.Tool {
	return mcp.NewTool("calculate",
		mcp.WithDescription("Calculate interactions between the selected complex and ligand and draw the visible ones."),
	)
}

func (s *Session) calculateHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	err := s.Controller.Submit(ctx)
	return s.outcome(err, fmt.Sprintf("Drew %d interaction lines", len(s.Controller.Lines())))
}
