package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"chemint/internal/adapters/headless"
	mcpadapter "chemint/internal/adapters/mcp"
	"chemint/internal/bootstrap"
	"chemint/internal/config"
	"chemint/internal/logging"
)

func main() {
	configFlag := flag.String("config", "", "path to the config file")
	workspaceFlag := flag.String("workspace", "", "directory of PDB files (overrides the config)")
	sampleFlag := flag.Bool("sample", false, "add the bundled sample complex")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("chemint-mcp: %v", err)
	}
	if *workspaceFlag != "" {
		cfg.Workspace = config.ExpandHome(*workspaceFlag)
	}

	// stdout carries the protocol
	if cfg.Log.Output == "stdout" {
		cfg.Log.Output = "stderr"
	}
	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		log.Fatalf("chemint-mcp: %v", err)
	}
	logging.SetDefault(logger)
	defer logger.Sync()

	presenter := headless.NewPresenter(logger.Named("presenter"))
	rt, err := bootstrap.New(bootstrap.Options{
		Config:    cfg,
		Presenter: presenter,
		Logger:    logger,
		Files:     flag.Args(),
		Sample:    *sampleFlag,
	})
	if err != nil {
		log.Fatalf("chemint-mcp: %v", err)
	}
	defer rt.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := rt.Controller.Load(ctx); err != nil {
		log.Fatalf("chemint-mcp: %v", err)
	}
	go func() {
		if err := rt.Controller.WatchStructures(ctx); err != nil {
			logger.Warn("structure watch stopped", logging.Err(err))
		}
	}()

	mcpServer := server.NewMCPServer(
		"chemint-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	sess := &mcpadapter.Session{Controller: rt.Controller, Presenter: presenter}
	mcpadapter.RegisterReadTools(mcpServer, sess)
	mcpadapter.RegisterWriteTools(mcpServer, sess)
	mcpadapter.RegisterSnapshotTool(mcpServer, sess)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("chemint-mcp: %v", err)
	}
}
