// ABOUTME: MCP resource implementations for the training catalog.
// ABOUTME: Provides gymguide://catalog and gymguide://stats resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	catalogURI = "gymguide://catalog"
	statsURI   = "gymguide://stats"
)

func (s *Server) registerResources() {
	// Everything a client needs to drive the selection flow
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         catalogURI,
		Name:        "Training Catalog",
		Description: "Objectives, frequency levels, muscles and the muscle key index",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         statsURI,
		Name:        "Catalog Statistics",
		Description: "Row counts per table and exercises per muscle and objective",
		MIMEType:    "application/json",
	}, s.handleStatsResource)
}

// Resource handlers

func (s *Server) handleCatalogResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return jsonResource(catalogURI, catalog)
}

func (s *Server) handleStatsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	return jsonResource(statsURI, stats)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
