// Package inspect implements a JSON-RPC 2.0 server for inspecting a running
// render loop.
//
// The server answers read-only queries. They run on the render loop between
// passes, so they always see a consistent view tree.
package inspect

import (
	"context"
	"io"
	"net"

	"github.com/goccy/go-json"
	"github.com/sourcegraph/jsonrpc2"

	"arbor.elv.sh/pkg/logutil"
	"arbor.elv.sh/pkg/render"
	"arbor.elv.sh/pkg/store/storedefs"
	"arbor.elv.sh/pkg/view"
)

var logger = logutil.GetLogger("[inspect] ")

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
	errStopped = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInternalError, Message: "render loop stopped"}
)

// PassSource provides the recorded passes. It is satisfied by
// *trace.Recorder.
type PassSource interface {
	Passes(n int) ([]storedefs.Pass, error)
}

// Server answers inspector queries about a Driver run by a Loop.
type Server struct {
	loop   *render.Loop
	driver *render.Driver
	passes PassSource
}

// NewServer creates a Server. passes may be nil, in which case the passes
// method returns an empty list.
func NewServer(loop *render.Loop, driver *render.Driver, passes PassSource) *Server {
	return &Server{loop, driver, passes}
}

// Stats is the result of the stats method.
type Stats struct {
	Pass     int    `json:"pass"`
	Views    int    `json:"views"`
	Creates  int    `json:"creates"`
	Updates  int    `json:"updates"`
	Moves    int    `json:"moves"`
	Destroys int    `json:"destroys"`
	Pruned   int    `json:"pruned"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Duration string `json:"duration"`
}

// PassesParams are the parameters of the passes method.
type PassesParams struct {
	// N is the maximum number of passes to return; 0 means 10.
	N int `json:"n"`
}

func (s *Server) handler() jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"tree":   s.tree,
		"stats":  s.stats,
		"passes": s.passesMethod,
	})
}

type method func(context.Context, json.RawMessage) (any, error)

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, params)
	})
}

// onLoop runs f on the render loop.
func (s *Server) onLoop(f func()) error {
	if err := s.loop.Do(f); err != nil {
		return errStopped
	}
	return nil
}

func (s *Server) tree(context.Context, json.RawMessage) (any, error) {
	var infos []view.Info
	err := s.onLoop(func() { infos = s.driver.Store().Snapshot() })
	if infos == nil {
		infos = []view.Info{}
	}
	return infos, err
}

func (s *Server) stats(context.Context, json.RawMessage) (any, error) {
	var st Stats
	err := s.onLoop(func() {
		last, size := s.driver.LastStats(), s.driver.Size()
		st = Stats{
			Pass: last.Pass, Views: s.driver.Store().Len(),
			Creates: last.Counts.Create, Updates: last.Counts.Update,
			Moves: last.Counts.Move, Destroys: last.Counts.Destroy,
			Pruned: last.Pruned, Width: size.Width, Height: size.Height,
			Duration: last.Duration.String(),
		}
	})
	return st, err
}

func (s *Server) passesMethod(_ context.Context, rawParams json.RawMessage) (any, error) {
	var params PassesParams
	if len(rawParams) > 0 && json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	if params.N < 0 {
		return nil, errInvalidParams
	}
	if params.N == 0 {
		params.N = 10
	}
	passes := []storedefs.Pass{}
	if s.passes == nil {
		return passes, nil
	}
	var err error
	// The store is written by the loop; read it there too.
	loopErr := s.onLoop(func() {
		var ps []storedefs.Pass
		ps, err = s.passes.Passes(params.N)
		passes = append(passes, ps...)
	})
	if loopErr != nil {
		return nil, loopErr
	}
	if err != nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
	}
	return passes, nil
}

// ServeConn serves one connection until it is closed or ctx is done, and
// returns a channel that is closed when the connection is gone.
func (s *Server) ServeConn(ctx context.Context, rwc io.ReadWriteCloser) <-chan struct{} {
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{}), s.handler())
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-conn.DisconnectNotify():
		}
	}()
	return conn.DisconnectNotify()
}

// Serve accepts connections on l until ctx is done or l fails.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	go func() {
		<-ctx.Done()
		l.Close()
	}()
	for {
		c, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		logger.Println("accepted connection from", c.RemoteAddr())
		s.ServeConn(ctx, c)
	}
}
