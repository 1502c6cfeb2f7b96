package demo

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"arbor.elv.sh/pkg/config"
	"arbor.elv.sh/pkg/errutil"
	"arbor.elv.sh/pkg/inspect"
	"arbor.elv.sh/pkg/logutil"
	"arbor.elv.sh/pkg/prog"
	"arbor.elv.sh/pkg/render"
	"arbor.elv.sh/pkg/store"
	"arbor.elv.sh/pkg/sys"
	"arbor.elv.sh/pkg/term"
	"arbor.elv.sh/pkg/trace"
)

// ErrNotTerminal is returned by Program when stdin or stdout is not a
// terminal.
var ErrNotTerminal = errors.New("stdin and stdout must be terminals")

// Program runs the list editor on the terminal. Arguments, if any, replace
// the items from the configuration file.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) (err error) {
	cfg, err := loadConfig(f, args)
	if err != nil {
		return err
	}
	if !sys.IsATTY(fds[0].Fd()) || !sys.IsATTY(fds[1].Fd()) {
		return ErrNotTerminal
	}
	if cfg.Log != "" && f.Log == "" {
		if err := logutil.SetOutputFile(cfg.Log); err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	stateStore, passStore, closers, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer func() { err = errutil.Multi(err, errutil.CloseAll(closers...)) }()
	recorder := trace.NewRecorder(passStore)
	logger.Println("session", recorder.Session())

	size, ok := sys.TermSize(fds[1])
	if !ok {
		return ErrNotTerminal
	}
	a := New(fds[1], size, Options{
		Items: cfg.Items, MaxHeight: cfg.MaxHeight, State: stateStore, Tracer: recorder})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.InspectAddr != "" {
		l, err := net.Listen("tcp", cfg.InspectAddr)
		if err != nil {
			return fmt.Errorf("inspector: %w", err)
		}
		logger.Println("inspector listening on", l.Addr())
		go func() {
			if err := inspect.NewServer(a.Loop(), a.Driver(), recorder).Serve(ctx, l); err != nil {
				logger.Println("inspector:", err)
			}
		}()
	}

	restore, err := setupTerminal(fds[0])
	if err != nil {
		return fmt.Errorf("set up terminal: %w", err)
	}
	defer func() { err = errutil.Multi(err, restore()) }()

	go readKeys(fds[0], a)
	go watchResize(ctx, fds[1], a)
	err = a.Run(ctx)
	fmt.Fprint(fds[1], "\r\n")
	return err
}

// loadConfig loads the configuration file and applies the flags and
// arguments on top of it.
func loadConfig(f *prog.Flags, args []string) (*config.Config, error) {
	cfg := &config.Config{}
	if f.Config != "" {
		var err error
		cfg, err = config.Load(f.Config)
		if err != nil {
			return nil, err
		}
	}
	if f.DB != "" {
		cfg.StateDB = f.DB
	}
	if f.Trace != "" {
		cfg.TraceDB = f.Trace
	}
	if f.Inspect != "" {
		cfg.InspectAddr = f.Inspect
	}
	if len(args) > 0 {
		cfg.Items = args
	}
	if err := cfg.Validate(); err != nil {
		return nil, prog.BadUsage(err.Error())
	}
	return cfg, nil
}

// openStores opens the state and trace stores. Unconfigured stores live in
// memory; a database configured for both is opened once.
func openStores(cfg *config.Config) (state, passes store.DBStore, closers []errutil.Closer, err error) {
	open := func(path string) (store.DBStore, error) {
		if path == "" {
			return store.NewMemStore(), nil
		}
		s, err := store.NewStore(path)
		if err != nil {
			return nil, err
		}
		closers = append(closers, s)
		return s, nil
	}
	if state, err = open(cfg.StateDB); err != nil {
		return nil, nil, nil, err
	}
	if cfg.TraceDB != "" && cfg.TraceDB == cfg.StateDB {
		return state, state, closers, nil
	}
	if passes, err = open(cfg.TraceDB); err != nil {
		return nil, nil, nil, errutil.Multi(err, errutil.CloseAll(closers...))
	}
	return state, passes, closers, nil
}

func readKeys(in *os.File, a *App) {
	rd := term.NewReader(in)
	for {
		k, err := rd.ReadKey()
		if err != nil {
			if term.IsReadErrorRecoverable(err) {
				logger.Println("read key:", err)
				continue
			}
			a.Fail(fmt.Errorf("read key: %w", err))
			return
		}
		a.Key(k)
	}
}

func watchResize(ctx context.Context, out *os.File, a *App) {
	ch := sys.NotifyResize()
	defer sys.StopResize(ch)
	for {
		select {
		case <-ch:
			size, ok := sys.TermSize(out)
			if !ok {
				continue
			}
			if err := a.Resize(size); err == render.ErrStopped {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
