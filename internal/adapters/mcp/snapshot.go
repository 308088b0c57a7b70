package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"chemint/internal/adapters/snapshot"
)

// RegisterSnapshotTool adds the tool that renders the drawn lines to PNG.
func RegisterSnapshotTool(s *server.MCPServer, sess *Session) {
	s.AddTool(snapshotTool(), sess.snapshotHandler)
}

func snapshotTool() mcp.Tool {
	return mcp.NewTool("save_snapshot",
		mcp.WithDescription("Render the drawn interaction lines to a PNG file."),
		mcp.WithString("path",
			mcp.Description("Output file, e.g. /tmp/1tyl.png"),
			mcp.Required(),
		),
		mcp.WithNumber("size",
			mcp.Description("Image width and height in pixels (default 800)"),
		),
	)
}

func (s *Session) snapshotHandler(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return toolError(fmt.Errorf("path is required"))
	}

	cfg := snapshot.DefaultConfig()
	if size := int(req.GetFloat("size", 0)); size > 0 {
		cfg.Width, cfg.Height = size, size
	}

	scene := snapshot.Scene{Title: s.title(), Lines: s.Controller.Lines()}
	if err := snapshot.RenderFile(path, scene, cfg); err != nil {
		return toolError(err)
	}
	abs, _ := filepath.Abs(path)
	return mcp.NewToolResultText(fmt.Sprintf("Wrote %d lines to %s", len(scene.Lines), abs)), nil
}

// title names the selected complex and ligand
func (s *Session) title() string {
	m := s.Controller.Menu()
	var structure, ligand string
	if sel := m.Structures.Selected(); len(sel) > 0 {
		structure = sel[0].Text
	}
	if sel := m.Ligands.Selected(); len(sel) > 0 {
		ligand = sel[0].Text
	}
	if ligand == "" {
		return structure
	}
	return structure + " / " + ligand
}
