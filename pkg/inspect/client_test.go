package inspect

import (
	"context"
	"net"
	"os"
	"testing"

	"arbor.elv.sh/pkg/prog"
	"arbor.elv.sh/pkg/prog/progtest"
	"arbor.elv.sh/pkg/render"
	"arbor.elv.sh/pkg/tk"
)

func TestQueryProgram(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skip("cannot listen:", err)
	}
	d := render.NewDriver(tk.NewScreen(), render.Options{})
	loop := render.NewDriverLoop(d, root)
	go loop.Run(ctx)
	go NewServer(loop, d, nil).Serve(ctx, l)
	addr := l.Addr().String()

	progtest.Test(t, QueryProgram{},
		progtest.ThatArbor("-inspect", addr, "-query", "passes", "3").
			WritesStdout("[]\n"),
		progtest.ThatArbor("-inspect", addr, "-query", "tree").
			WritesStdoutContaining(`"/Column#1/Label/\"a\"#1"`),
		progtest.ThatArbor("-inspect", addr, "-query", "nope").
			ExitsWith(2).
			WritesStderrContaining("method not found"),
		progtest.ThatArbor("-query", "tree").
			ExitsWith(2).
			WritesStderrContaining("-query requires -inspect\nUsage:"),
		progtest.ThatArbor("-inspect", addr, "-query", "passes", "x").
			ExitsWith(2).
			WritesStderrContaining("invalid number of passes: x"),
	)
}

func TestQueryProgram_NotSuitable(t *testing.T) {
	err := QueryProgram{}.Run([3]*os.File{}, &prog.Flags{}, nil)
	if err != prog.ErrNotSuitable {
		t.Errorf("Run without -query -> %v, want ErrNotSuitable", err)
	}
}
