package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func NewAskServer(reg *DocRegistry) *server.MCPServer {
	srv := server.NewMCPServer("askdocs", "0.1.0", server.WithToolCapabilities(false))

	askTool := mcp.NewTool("ask",
		mcp.WithDescription("Answer a question using the indexed documents as grounding context"),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("Question to answer"),
		))
	srv.AddTool(askTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q, err := request.RequireString("question")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		answer, err := reg.Answer(ctx, q)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		type sourceJSON struct {
			File    string `json:"file"`
			ChunkID int    `json:"chunk_id"`
			Text    string `json:"text"`
		}
		sources := make([]sourceJSON, 0, len(answer.Sources))
		for _, s := range answer.Sources {
			sources = append(sources, sourceJSON{File: s.File, ChunkID: s.ChunkID, Text: s.Text})
		}

		raw, err := json.Marshal(struct {
			Answer  string       `json:"answer"`
			Sources []sourceJSON `json:"sources"`
		}{
			Answer:  answer.Text,
			Sources: sources,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(raw)), nil
	})

	listTool := mcp.NewTool("list_documents",
		mcp.WithDescription("List the filenames of all indexed documents"))
	srv.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		files, err := reg.ListDocuments(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		raw, err := json.Marshal(files)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(raw)), nil
	})

	deleteTool := mcp.NewTool("delete_document",
		mcp.WithDescription("Remove a document and all of its chunks from the index"),
		mcp.WithString("filename",
			mcp.Required(),
			mcp.Description("Filename of the document to remove"),
		))
	srv.AddTool(deleteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filename, err := request.RequireString("filename")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := reg.DeleteDocument(ctx, filename); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("deleted %s", filename)), nil
	})

	statsTool := mcp.NewTool("stats",
		mcp.WithDescription("Report the number of indexed documents and chunks"))
	srv.AddTool(statsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := reg.Stats(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		raw, err := json.Marshal(struct {
			TotalDocuments int `json:"total_documents"`
			TotalChunks    int `json:"total_chunks"`
		}{
			TotalDocuments: stats.TotalDocuments,
			TotalChunks:    stats.TotalChunks,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(raw)), nil
	})

	return srv
}
