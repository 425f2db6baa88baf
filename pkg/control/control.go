// Package control exposes a headless desktop session as MCP tools, so
// agents can open, arrange and close windows without a terminal.
package control

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/infopirate/gibson/pkg/apps"
	"github.com/infopirate/gibson/pkg/dock"
	"github.com/infopirate/gibson/pkg/geom"
	"github.com/infopirate/gibson/pkg/torrent"
	"github.com/infopirate/gibson/pkg/wm"
)

// Config wires a Server.
type Config struct {
	Manager  *wm.Manager
	Catalog  *apps.Catalog
	Torrents *torrent.Simulator
	Log      logrus.FieldLogger
	Version  string
}

// Server maps MCP tool calls onto a window manager.
type Server struct {
	mu       sync.Mutex
	wm       *wm.Manager
	catalog  *apps.Catalog
	torrents *torrent.Simulator
	log      logrus.FieldLogger
	mcp      *mcpserver.MCPServer
}

// WindowView is the serialized form of a window.
type WindowView struct {
	ID        uint64 `json:"id" yaml:"id"`
	Kind      string `json:"kind" yaml:"kind"`
	Title     string `json:"title" yaml:"title"`
	X         int    `json:"x" yaml:"x"`
	Y         int    `json:"y" yaml:"y"`
	Width     int    `json:"width" yaml:"width"`
	Height    int    `json:"height" yaml:"height"`
	Stack     int    `json:"stack" yaml:"stack"`
	Active    bool   `json:"active" yaml:"active"`
	Minimized bool   `json:"minimized,omitempty" yaml:"minimized,omitempty"`
	Maximized bool   `json:"maximized,omitempty" yaml:"maximized,omitempty"`
}

// AppView is the serialized form of a catalog entry.
type AppView struct {
	Kind    string `json:"kind" yaml:"kind"`
	Title   string `json:"title" yaml:"title"`
	CanOpen bool   `json:"can_open" yaml:"can_open"`
	Width   int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height  int    `json:"height,omitempty" yaml:"height,omitempty"`
}

// New creates a server and registers its tools.
func New(cfg Config) *Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	s := &Server{
		wm:       cfg.Manager,
		catalog:  cfg.Catalog,
		torrents: cfg.Torrents,
		log:      cfg.Log,
	}
	if s.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		s.log = l
	}
	s.mcp = mcpserver.NewMCPServer("gibson", version, mcpserver.WithToolCapabilities(false))
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// ServeStdio serves MCP over stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return mcpserver.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	idArg := mcp.WithNumber("id", mcp.Required(), mcp.Description("Window id as returned by list_windows"))
	formatArg := mcp.WithString("format", mcp.Description("Output format"), mcp.Enum("yaml", "json"))

	s.mcp.AddTool(mcp.NewTool("list_windows",
		mcp.WithDescription("List open windows in stacking order, back to front"),
		formatArg,
	), s.handleListWindows)

	s.mcp.AddTool(mcp.NewTool("list_apps",
		mcp.WithDescription("List the applications that can be launched"),
		formatArg,
	), s.handleListApps)

	s.mcp.AddTool(mcp.NewTool("open_app",
		mcp.WithDescription("Open a window for an application kind"),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Application kind, e.g. terminal")),
		mcp.WithNumber("x", mcp.Description("Left edge; random when x and y are both omitted")),
		mcp.WithNumber("y", mcp.Description("Top edge")),
		mcp.WithString("title", mcp.Description("Window title override")),
	), s.handleOpen)

	s.mcp.AddTool(mcp.NewTool("focus_window",
		mcp.WithDescription("Raise and focus a window, restoring it if minimized"),
		idArg,
	), s.windowOp("focus", s.wmFocus))

	s.mcp.AddTool(mcp.NewTool("close_window",
		mcp.WithDescription("Close a window"),
		idArg,
	), s.windowOp("close", s.wmClose))

	s.mcp.AddTool(mcp.NewTool("minimize_window",
		mcp.WithDescription("Toggle a window's minimized state"),
		idArg,
	), s.windowOp("minimize", s.wmMinimize))

	s.mcp.AddTool(mcp.NewTool("maximize_window",
		mcp.WithDescription("Toggle a window between maximized and its saved geometry"),
		idArg,
	), s.windowOp("maximize", s.wmMaximize))

	s.mcp.AddTool(mcp.NewTool("move_window",
		mcp.WithDescription("Set a window's position and optionally its size; sizes are clamped to the minimum. Maximized windows are refused"),
		idArg,
		mcp.WithNumber("x", mcp.Required()),
		mcp.WithNumber("y", mcp.Required()),
		mcp.WithNumber("width"),
		mcp.WithNumber("height"),
	), s.handleMove)

	s.mcp.AddTool(mcp.NewTool("rename_window",
		mcp.WithDescription("Change a window's title"),
		idArg,
		mcp.WithString("title", mcp.Required()),
	), s.handleRename)

	s.mcp.AddTool(mcp.NewTool("list_dock",
		mcp.WithDescription("List taskbar entries in creation order"),
		formatArg,
	), s.handleListDock)

	s.mcp.AddTool(mcp.NewTool("list_torrents",
		mcp.WithDescription("List simulated torrent transfers"),
		formatArg,
	), s.handleListTorrents)

	s.mcp.AddTool(mcp.NewTool("add_torrent",
		mcp.WithDescription("Add a transfer from a URL or magnet link"),
		mcp.WithString("link", mcp.Required()),
	), s.handleAddTorrent)
}

// Windows returns the window views in stacking order.
func (s *Server) Windows() []WindowView {
	active := s.wm.ActiveID()
	ws := s.wm.Windows()
	out := make([]WindowView, len(ws))
	for i, w := range ws {
		out[i] = WindowView{
			ID:        uint64(w.ID),
			Kind:      string(w.Kind),
			Title:     w.Title,
			X:         w.Position.X,
			Y:         w.Position.Y,
			Width:     w.Size.Width,
			Height:    w.Size.Height,
			Stack:     w.Stack,
			Active:    w.ID == active,
			Minimized: w.Minimized,
			Maximized: w.Maximized,
		}
	}
	return out
}

func encode(v any, format string) (*mcp.CallToolResult, error) {
	var (
		b   []byte
		err error
	)
	if format == "json" {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = yaml.Marshal(v)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) handleListWindows(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return encode(s.Windows(), req.GetString("format", "yaml"))
}

func (s *Server) handleListApps(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var out []AppView
	for _, a := range s.catalog.Apps() {
		tpl, _ := s.catalog.Template(a.Kind)
		out = append(out, AppView{
			Kind:    string(a.Kind),
			Title:   a.Title,
			CanOpen: tpl.CanOpen,
			Width:   a.DefaultSize.Width,
			Height:  a.DefaultSize.Height,
		})
	}
	return encode(out, req.GetString("format", "yaml"))
}

func (s *Server) handleOpen(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var opts []wm.OpenOption
	args := req.GetArguments()
	_, hasX := args["x"]
	_, hasY := args["y"]
	switch {
	case hasX && hasY:
		opts = append(opts, wm.AtPosition(geom.Point{X: req.GetInt("x", 0), Y: req.GetInt("y", 0)}))
	case hasX || hasY:
		return mcp.NewToolResultError("x and y must be given together"), nil
	}
	if title := req.GetString("title", ""); title != "" {
		opts = append(opts, wm.WithTitle(title))
	}

	s.mu.Lock()
	id, ok := s.wm.Open(wm.AppKind(kind), opts...)
	s.mu.Unlock()
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("cannot open %q", kind)), nil
	}
	s.log.WithFields(logrus.Fields{"window": id, "kind": kind}).Info("opened via mcp")

	w, _ := s.wm.Window(id)
	return encode(WindowView{
		ID: uint64(id), Kind: kind, Title: w.Title,
		X: w.Position.X, Y: w.Position.Y, Width: w.Size.Width, Height: w.Size.Height,
		Stack: w.Stack, Active: true,
	}, "yaml")
}

func (s *Server) wmFocus(id wm.ID) bool    { return dock.Activate(s.wm, dock.Entry{ID: id}) }
func (s *Server) wmClose(id wm.ID) bool    { return s.wm.Close(id) }
func (s *Server) wmMinimize(id wm.ID) bool { return s.wm.ToggleMinimize(id) }
func (s *Server) wmMaximize(id wm.ID) bool { return s.wm.ToggleMaximize(id) }

// windowOp adapts a single-window manager operation to a tool handler.
// Unknown ids are reported, not treated as failures of the server.
func (s *Server) windowOp(name string, op func(wm.ID) bool) mcpserver.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := req.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id := wm.ID(raw)

		s.mu.Lock()
		ok := op(id)
		s.mu.Unlock()
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("no window %s", id)), nil
		}
		s.log.WithFields(logrus.Fields{"window": id, "op": name}).Info("window op via mcp")
		return encode(s.Windows(), "yaml")
	}
}

func (s *Server) handleMove(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id := wm.ID(raw)

	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wm.Window(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no window %s", id)), nil
	}
	if w.Maximized {
		return mcp.NewToolResultError(fmt.Sprintf("%s is maximized; restore it with maximize_window first", id)), nil
	}
	pos := geom.Point{X: req.GetInt("x", w.Position.X), Y: req.GetInt("y", w.Position.Y)}
	size := geom.Size{
		Width:  max(wm.MinWidth, req.GetInt("width", w.Size.Width)),
		Height: max(wm.MinHeight, req.GetInt("height", w.Size.Height)),
	}
	s.wm.SetGeometry(id, pos, size)
	return mcp.NewToolResultText(fmt.Sprintf("%s at %s size %s", id, pos, size)), nil
}

func (s *Server) handleRename(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.mu.Lock()
	ok := s.wm.Rename(wm.ID(raw), title)
	s.mu.Unlock()
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no window %s", wm.ID(raw))), nil
	}
	return mcp.NewToolResultText("renamed"), nil
}

func (s *Server) handleListTorrents(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return encode(s.torrents.List(), req.GetString("format", "yaml"))
}

func (s *Server) handleAddTorrent(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	link, err := req.RequireString("link")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !s.torrents.Add(link) {
		return mcp.NewToolResultError("Could not parse link or find torrent data."), nil
	}
	return mcp.NewToolResultText("Torrent added."), nil
}

// Dock returns the taskbar entries for the session.
func (s *Server) Dock() []dock.Entry {
	return dock.Entries(s.wm.Windows(), s.wm.ActiveID())
}

func (s *Server) handleListDock(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return encode(s.Dock(), req.GetString("format", "yaml"))
}
