package inspect

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/sourcegraph/jsonrpc2"

	"arbor.elv.sh/pkg/prog"
)

// Client is a connection to an inspector.
type Client struct {
	conn *jsonrpc2.Conn
}

// Dial connects to the inspector listening on addr.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewClient(ctx, c), nil
}

// NewClient creates a Client over an existing connection.
func NewClient(ctx context.Context, c net.Conn) *Client {
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(c, jsonrpc2.VSCodeObjectCodec{}),
		jsonrpc2.HandlerWithError(func(context.Context, *jsonrpc2.Conn, *jsonrpc2.Request) (any, error) {
			return nil, errMethodNotFound
		}))
	return &Client{conn}
}

// Call calls a method and stores its result in the value pointed to by
// result.
func (c *Client) Call(ctx context.Context, method string, params, result any) error {
	return c.conn.Call(ctx, method, params, result)
}

// Close closes the connection.
func (c *Client) Close() error { return c.conn.Close() }

// QueryProgram calls an inspector method and prints the result as JSON. It
// runs only when the -query flag is given; the remaining argument, if any,
// is the number of passes for the passes method.
type QueryProgram struct{}

func (QueryProgram) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if f.Query == "" {
		return prog.ErrNotSuitable
	}
	if f.Inspect == "" {
		return prog.BadUsage("-query requires -inspect")
	}
	var params any
	switch {
	case len(args) > 1:
		return prog.BadUsage("too many arguments")
	case len(args) == 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return prog.BadUsage("invalid number of passes: " + args[0])
		}
		params = PassesParams{N: n}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c, err := Dial(ctx, f.Inspect)
	if err != nil {
		return fmt.Errorf("connect to inspector: %w", err)
	}
	defer c.Close()

	var result json.RawMessage
	if err := c.Call(ctx, f.Query, params, &result); err != nil {
		return fmt.Errorf("%s: %w", f.Query, err)
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fds[1].Write(append(out, '\n'))
	return nil
}
