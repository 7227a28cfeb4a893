// Package lsp implements a language server for palette files.
package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const serverName = "colorfamily-lsp"

var log = commonlog.GetLogger("colorfamily.lsp")

type Server struct {
	handler   protocol.Handler
	docs      *DocumentStore
	version   string
	verbosity int
}

func NewServer(version string, verbosity int) *Server {
	s := &Server{
		docs:      NewDocumentStore(),
		version:   version,
		verbosity: verbosity,
	}

	s.handler = protocol.Handler{
		Initialize:                    s.initialize,
		Initialized:                   s.initialized,
		Shutdown:                      s.shutdown,
		SetTrace:                      s.setTrace,
		TextDocumentDidOpen:           s.textDocumentDidOpen,
		TextDocumentDidChange:         s.textDocumentDidChange,
		TextDocumentDidClose:          s.textDocumentDidClose,
		TextDocumentHover:             s.textDocumentHover,
		TextDocumentCompletion:        s.textDocumentCompletion,
		TextDocumentDefinition:        s.textDocumentDefinition,
		TextDocumentColor:             s.textDocumentDocumentColor,
		TextDocumentColorPresentation: s.textDocumentColorPresentation,
		TextDocumentFormatting:        s.textDocumentFormatting,
	}

	return s
}

func (s *Server) Run() error {
	commonlog.Configure(s.verbosity, nil)
	srv := server.NewServer(&s.handler, serverName, false)
	return srv.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"."},
	}

	if params.ClientInfo != nil {
		log.Infof("initializing for %s", params.ClientInfo.Name)
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.Open(uri, params.TextDocument.Text)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	for _, change := range params.ContentChanges {
		if c, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.docs.Update(uri, c.Text)
		}
	}
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.Close(string(params.TextDocument.URI))
	// Clear diagnostics for the closed document
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// getResult returns the analysis of the open document at uri, analyzing it
// if the cached result is missing or stale. It returns nil for unknown
// documents.
func (s *Server) getResult(uri string) *AnalysisResult {
	if result, ok := s.docs.Result(uri); ok {
		return result
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil
	}

	result := Analyze(uri, content)
	log.Debugf("analyzed %s: %d entries, %d diagnostics", uri, len(result.Entries), len(result.Diagnostics))
	s.docs.SetResult(uri, content, result)
	return result
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, uri string) {
	result := s.getResult(uri)
	if result == nil {
		return
	}

	diags := result.Diagnostics
	if diags == nil {
		diags = []protocol.Diagnostic{}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(uri),
		Diagnostics: diags,
	})
}
