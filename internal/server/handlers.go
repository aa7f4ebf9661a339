package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/pixeldesk/image-studio/internal/editor"
	"github.com/pixeldesk/image-studio/internal/history"
	"github.com/pixeldesk/image-studio/internal/imageio"
	"github.com/pixeldesk/image-studio/internal/inspect"
	"github.com/pixeldesk/image-studio/internal/ops"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "studio_apply", "studio_undo").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000
// and an error kind in the data field so clients can show a matching message.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", map[string]string{"detail": err.Error()})
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", map[string]string{
			"kind":   errorKind(err),
			"detail": err.Error(),
		})
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Session lifecycle
	case "studio_open":
		return s.handleOpen(args)
	case "studio_save":
		return s.handleSave(args)
	case "studio_export":
		return s.handleExport(args)
	case "studio_reset":
		return s.handleReset()

	// Editing
	case "studio_apply":
		return s.handleApply(args)
	case "studio_undo":
		return s.handleUndo()
	case "studio_redo":
		return s.handleRedo()

	// Session introspection
	case "studio_current":
		return s.handleCurrent()
	case "studio_render":
		return s.handleRender(args)
	case "studio_history":
		return s.handleHistory()
	case "studio_operations":
		return s.handleOperations()
	case "studio_stats":
		return s.editor.Stats(), nil

	// File inspection (does not touch the session)
	case "image_info":
		return s.handleImageInfo(args)
	case "image_sample_color":
		return s.handleSampleColor(args)
	case "image_dominant_colors":
		return s.handleDominantColors(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorKind names the error category for client-side messaging.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ops.ErrUnknownOperation):
		return "unknown_operation"
	case errors.Is(err, ops.ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, history.ErrNoMoreHistory):
		return "no_more_history"
	case errors.Is(err, history.ErrEmptyHistory), errors.Is(err, editor.ErrNoImage):
		return "empty_history"
	case errors.Is(err, imageio.ErrUnsupportedFormat):
		return "io_failure"
	default:
		return "io_failure"
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// imageState describes the session's current image. It is the shared result
// shape for every tool that changes what the session displays.
type imageState struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	State         string `json:"state"`
	HistoryLength int    `json:"history_length"`
	Cursor        int    `json:"cursor"`
}

func (s *Server) imageStateResult(img image.Image) *imageState {
	labels, cursor := s.editor.History()
	return &imageState{
		Width:         img.Bounds().Dx(),
		Height:        img.Bounds().Dy(),
		State:         s.editor.State().String(),
		HistoryLength: len(labels),
		Cursor:        cursor,
	}
}

// === Session lifecycle handlers ===

type openArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleOpen(args json.RawMessage) (interface{}, error) {
	var a openArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.editor.Open(a.Path)
	if err != nil {
		return nil, err
	}
	return s.imageStateResult(img), nil
}

type saveArgs struct {
	Path    string `json:"path"`
	Quality int    `json:"quality"`
}

type saveResult struct {
	Path string `json:"path"`
}

func (s *Server) handleSave(args json.RawMessage) (interface{}, error) {
	var a saveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.editor.Save(a.Path, a.Quality); err != nil {
		return nil, err
	}
	return &saveResult{Path: a.Path}, nil
}

type exportArgs struct {
	Dir     string `json:"dir"`
	Quality int    `json:"quality"`
}

type exportResult struct {
	Paths []string `json:"paths"`
}

func (s *Server) handleExport(args json.RawMessage) (interface{}, error) {
	var a exportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	paths, err := s.editor.Export(a.Dir, a.Quality)
	if err != nil {
		return nil, err
	}
	return &exportResult{Paths: paths}, nil
}

func (s *Server) handleReset() (interface{}, error) {
	img, err := s.editor.Reset()
	if err != nil {
		return nil, err
	}
	return s.imageStateResult(img), nil
}

// === Editing handlers ===

type applyArgs struct {
	Op     string     `json:"op"`
	Params ops.Params `json:"params"`
}

func (s *Server) handleApply(args json.RawMessage) (interface{}, error) {
	var a applyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.editor.Apply(a.Op, a.Params)
	if err != nil {
		return nil, err
	}
	return s.imageStateResult(img), nil
}

func (s *Server) handleUndo() (interface{}, error) {
	img, err := s.editor.Undo()
	if err != nil {
		return nil, err
	}
	return s.imageStateResult(img), nil
}

func (s *Server) handleRedo() (interface{}, error) {
	img, err := s.editor.Redo()
	if err != nil {
		return nil, err
	}
	return s.imageStateResult(img), nil
}

// === Session introspection handlers ===

func (s *Server) handleCurrent() (interface{}, error) {
	img, err := s.editor.Current()
	if err != nil {
		return nil, err
	}
	return s.imageStateResult(img), nil
}

type renderArgs struct {
	Scale float64 `json:"scale"`
}

type renderResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// handleRender encodes the current image as base64 PNG, optionally resampled
// by scale so clients can fetch a preview-sized copy.
func (s *Server) handleRender(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.Scale < 0 {
		return nil, fmt.Errorf("%w: render scale must be positive", ops.ErrInvalidParameter)
	}

	img, err := s.editor.Current()
	if err != nil {
		return nil, err
	}

	if a.Scale != 1.0 {
		w := int(float64(img.Bounds().Dx()) * a.Scale)
		h := int(float64(img.Bounds().Dy()) * a.Scale)
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("%w: render scale %v collapses the image", ops.ErrInvalidParameter, a.Scale)
		}
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode render: %w", err)
	}

	return &renderResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

type historyResult struct {
	Labels []string `json:"labels"`
	Cursor int      `json:"cursor"`
}

func (s *Server) handleHistory() (interface{}, error) {
	labels, cursor := s.editor.History()
	return &historyResult{Labels: labels, Cursor: cursor}, nil
}

type operationsResult struct {
	Operations []*ops.Operation `json:"operations"`
}

func (s *Server) handleOperations() (interface{}, error) {
	return &operationsResult{Operations: s.editor.Registry().Operations()}, nil
}

// === File inspection handlers ===

type imageInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imageio.Stat(s.cache, a.Path)
}

type sampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleSampleColor(args json.RawMessage) (interface{}, error) {
	var a sampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return inspect.SampleColor(img, a.X, a.Y)
}

type dominantColorsArgs struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

type dominantColorsResult struct {
	Colors []inspect.ColorFrequency `json:"colors"`
}

func (s *Server) handleDominantColors(args json.RawMessage) (interface{}, error) {
	var a dominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return &dominantColorsResult{Colors: inspect.DominantColors(img, a.Count)}, nil
}
