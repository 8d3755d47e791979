package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerJournalResource(srv, svc)
	registerEntryTemplate(srv, svc)
}

func registerJournalResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"aurora://journal",
		"Journal",
		mcp.WithResourceDescription("Every journal entry, newest date first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries, err := svc.ListEntries(ctx)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"count":   len(entries),
			"entries": entries,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerEntryTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"aurora://journal/{date}",
		"Journal Entry",
		mcp.WithTemplateDescription("The entry written for a single date."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		date := templateArg(request.Params.Arguments, "date")
		if date == "" {
			return nil, fmt.Errorf("entry date is required")
		}

		dto, err := svc.GetEntry(ctx, date)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"entry": dto,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// templateArg reads a URI template variable, which the server may hand over
// as a plain string or as a single-element list.
func templateArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
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
