package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// noArgsSchema is the schema for tools that take no arguments.
func noArgsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session lifecycle
		{
			Name:        "studio_open",
			Description: "Open an image file as the editing session's starting point. Clears any previous history.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "studio_save",
			Description: "Save the current image to a file. The output format is chosen from the file extension.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Destination path; extension selects the format (png, jpg, gif, bmp, tiff)",
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"description": "JPEG quality 1-100 (default 95, ignored for other formats)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "studio_export",
			Description: "Export the current image into a directory once per export format (PNG, JPEG, TIFF).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dir": map[string]interface{}{
						"type":        "string",
						"description": "Destination directory",
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"description": "JPEG quality 1-100 (default 95)",
					},
				},
				"required": []string{"dir"},
			},
		},
		{
			Name:        "studio_reset",
			Description: "Discard all edits and return to the originally opened image.",
			InputSchema: noArgsSchema(),
		},

		// Editing
		{
			Name:        "studio_apply",
			Description: "Apply a named operation to the current image and commit the result to history. Use studio_operations to list operations and their parameters.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"op": map[string]interface{}{
						"type":        "string",
						"description": "Operation name, e.g. \"blur\" or \"brightness\"",
					},
					"params": map[string]interface{}{
						"type":        "object",
						"description": "Operation parameters; out-of-range values are rejected, not clamped",
					},
				},
				"required": []string{"op"},
			},
		},
		{
			Name:        "studio_undo",
			Description: "Step back one history entry. Fails when already at the oldest entry.",
			InputSchema: noArgsSchema(),
		},
		{
			Name:        "studio_redo",
			Description: "Step forward one history entry. Fails when already at the newest entry.",
			InputSchema: noArgsSchema(),
		},

		// Session introspection
		{
			Name:        "studio_current",
			Description: "Describe the current image: dimensions, history length and cursor.",
			InputSchema: noArgsSchema(),
		},
		{
			Name:        "studio_render",
			Description: "Render the current image as base64-encoded PNG, optionally resampled for preview.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Resample factor (default 1.0)",
					},
				},
			},
		},
		{
			Name:        "studio_history",
			Description: "List the history entry labels and the cursor position.",
			InputSchema: noArgsSchema(),
		},
		{
			Name:        "studio_operations",
			Description: "List every available operation with its declared parameters, ranges and defaults.",
			InputSchema: noArgsSchema(),
		},
		{
			Name:        "studio_stats",
			Description: "Session statistics: images loaded, operations applied, session start time.",
			InputSchema: noArgsSchema(),
		},

		// File inspection
		{
			Name:        "image_info",
			Description: "Load an image file and return its dimensions, format and file size. Does not touch the session.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel coordinate of an image file in hex, RGBA and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "Extract the most frequent colors of an image file, most common first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum colors to return (default 5)",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
