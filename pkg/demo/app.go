package demo

import (
	"context"
	"io"

	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/logutil"
	"arbor.elv.sh/pkg/notify"
	"arbor.elv.sh/pkg/render"
	"arbor.elv.sh/pkg/store/storedefs"
	"arbor.elv.sh/pkg/term"
	"arbor.elv.sh/pkg/tk"
)

var logger = logutil.GetLogger("[demo] ")

// Options configures an App. All fields are optional.
type Options struct {
	Items []string
	// MaxHeight limits the number of lines used; 0 means no limit.
	MaxHeight int
	State     storedefs.StateStore
	Tracer    render.Tracer
}

// App runs the list editor on a terminal.
type App struct {
	model     *Model
	screen    *tk.View
	driver    *render.Driver
	loop      *render.Loop
	writer    term.Writer
	observer  *notify.FrameObserver
	maxHeight int
}

// New creates an App that draws to out, which is a terminal of the given
// size.
func New(out io.Writer, size geom.Size, opts Options) *App {
	a := &App{
		model:     NewModel(opts.Items, opts.State),
		screen:    tk.NewScreen(),
		writer:    term.NewWriter(out),
		maxHeight: opts.MaxHeight,
	}
	a.driver = render.NewDriver(a.screen, render.Options{State: opts.State, Tracer: opts.Tracer})
	a.driver.SetSize(a.clamp(size))
	a.observer = &notify.FrameObserver{Delegate: notify.FrameDelegateFunc(
		func(_ *notify.FrameObserver, info notify.FrameInfo) {
			a.driver.SetSize(a.clamp(info.EndFrame.Size))
			a.writer.ResetBuffer()
			a.loop.RequestRender()
		})}
	a.loop = render.NewLoop(a.render)
	a.loop.HandleCb(a.handle)
	return a
}

func (a *App) clamp(size geom.Size) geom.Size {
	if a.maxHeight > 0 && size.Height > a.maxHeight {
		size.Height = a.maxHeight
	}
	return size
}

// Loop returns the render loop of the App.
func (a *App) Loop() *render.Loop { return a.loop }

// Driver returns the render driver of the App. It must only be used on the
// render loop.
func (a *App) Driver() *render.Driver { return a.driver }

// Model returns the model of the App. It must only be used on the render
// loop.
func (a *App) Model() *Model { return a.model }

// Observer returns the frame observer of the App. It must only be used on the
// render loop.
func (a *App) Observer() *notify.FrameObserver { return a.observer }

// Key delivers a key press.
func (a *App) Key(k term.Key) { a.loop.Input(k) }

// Resize delivers a resize of the terminal.
func (a *App) Resize(size geom.Size) error {
	return a.Notify(notify.Notification{
		Name: notify.FrameDidChange,
		Info: map[string]any{
			notify.KeyEndFrame:          geom.Rect{Size: size},
			notify.KeyAnimationDuration: 0,
			notify.KeyAnimationCurve:    0,
		}})
}

// Notify delivers a frame notification to the observer on the render loop.
// A pass follows only if the notification changes the frame; malformed
// notifications are dropped and their parse error returned. It returns
// render.ErrStopped if the App is not running anymore.
func (a *App) Notify(n notify.Notification) error {
	var err error
	if loopErr := a.loop.Do(func() { err = a.observer.Receive(n) }); loopErr != nil {
		return loopErr
	}
	return err
}

// Fail stops the App with an error, for example when reading input failed.
func (a *App) Fail(err error) { a.loop.Input(err) }

// Run runs the App until it is asked to quit or ctx is done. The retained
// views are destroyed when it returns.
func (a *App) Run(ctx context.Context) error {
	if err := a.writer.HideCursor(); err != nil {
		logger.Println("hide cursor:", err)
	}
	defer func() {
		if err := a.writer.ShowCursor(); err != nil {
			logger.Println("show cursor:", err)
		}
	}()
	defer a.driver.Close()
	return a.loop.Run(ctx)
}

func (a *App) render() {
	a.driver.RenderAndReconcile(a.model.Root())
	buf := a.screen.Render(a.driver.Size())
	if err := a.writer.UpdateBuffer(buf, false); err != nil {
		logger.Println("update terminal:", err)
	}
}

func (a *App) handle(ev render.Event) {
	switch ev := ev.(type) {
	case term.Key:
		if a.model.HandleKey(ev, a.driver.Tree()) {
			a.loop.Return(nil)
			return
		}
		a.loop.RequestRender()
	case error:
		a.loop.Return(ev)
	default:
		logger.Printf("unexpected event %T", ev)
	}
}
