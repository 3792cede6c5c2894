package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) dashboard(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	stats, err := h.ds.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, stats)
}

func (h *handlers) library(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	items, err := h.ds.Library(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, items)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
