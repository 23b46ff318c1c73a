package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	boardsURI      = "whiteboard://boards"
	boardURIPrefix = "whiteboard://board/"
	elementsSuffix = "/elements"
)

func elementsURI(boardID string) string {
	return boardURIPrefix + boardID + elementsSuffix
}

func (s *Server) registerResources() {
	// ── whiteboard://boards ────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		boardsURI,
		"All Boards",
		mcp.WithMIMEType("application/json"),
	), s.handleBoardsResource)

	// ── whiteboard://board/{boardId}/elements ──────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			boardURIPrefix+"{boardId}"+elementsSuffix,
			"Elements on a Board",
		),
		s.handleBoardElementsResource,
	)
}

func (s *Server) handleBoardsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(s.boards.ListBoards(), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      boardsURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleBoardElementsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	boardID := boardIDFromURI(uri)
	if boardID == "" {
		return nil, fmt.Errorf("could not extract boardId from URI: %s", uri)
	}

	els, err := s.boards.Elements(boardID)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(els, "", "  ")
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

// boardIDFromURI extracts the board ID from "whiteboard://board/{id}/elements".
func boardIDFromURI(uri string) string {
	rest, ok := strings.CutPrefix(uri, boardURIPrefix)
	if !ok {
		return ""
	}
	id, ok := strings.CutSuffix(rest, elementsSuffix)
	if !ok || strings.Contains(id, "/") {
		return ""
	}
	return id
}
