package demo

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"arbor.elv.sh/pkg/config"
	"arbor.elv.sh/pkg/prog"
	"arbor.elv.sh/pkg/prog/progtest"
	"arbor.elv.sh/pkg/store/storedefs"
	"arbor.elv.sh/pkg/testutil"
)

func TestProgram_Errors(t *testing.T) {
	dir := testutil.TempDir(t)
	badConfig := filepath.Join(dir, "bad.yaml")
	testutil.MustWriteFile(badConfig, "max-height: -1\n")

	progtest.Test(t, Program{},
		progtest.ThatArbor().
			ExitsWith(2).
			WritesStderr(ErrNotTerminal.Error()+"\n"),
		progtest.ThatArbor("-config", badConfig).
			ExitsWith(2).
			WritesStderrContaining("max-height must not be negative"),
		progtest.ThatArbor("a", "a").
			ExitsWith(2).
			WritesStderrContaining("duplicate item \"a\"\nUsage:"),
	)
}

func TestLoadConfig(t *testing.T) {
	dir := testutil.TempDir(t)
	name := filepath.Join(dir, "arbor.yaml")
	testutil.MustWriteFile(name, "items: [x]\nstate-db: file.db\ninspect-addr: :1\n")

	cfg, err := loadConfig(&prog.Flags{Config: name, Trace: "trace.db", Inspect: ":2"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := &config.Config{
		Items: []string{"x"}, StateDB: "file.db", TraceDB: "trace.db", InspectAddr: ":2"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}

	cfg, err = loadConfig(&prog.Flags{Config: name}, []string{"y", "z"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"y", "z"}, cfg.Items); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
}

func TestOpenStores(t *testing.T) {
	dir := testutil.TempDir(t)
	db := filepath.Join(dir, "arbor.db")

	state, passes, closers, err := openStores(&config.Config{StateDB: db, TraceDB: db})
	if err != nil {
		t.Fatal(err)
	}
	if state != passes || len(closers) != 1 {
		t.Errorf("shared database opened %d times", len(closers))
	}
	if err := state.SetState("k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	closers[0].Close()

	state, passes, closers, err = openStores(&config.Config{StateDB: db})
	if err != nil {
		t.Fatal(err)
	}
	defer closers[0].Close()
	if v, err := state.State("k"); string(v) != "v" || err != nil {
		t.Errorf("state not persisted: %q, %v", v, err)
	}
	if state == passes || len(closers) != 1 {
		t.Errorf("trace should be in memory")
	}
	if _, err := passes.AddPass(storedefs.Pass{}); err != nil {
		t.Errorf("AddPass to memory store: %v", err)
	}

	_, _, _, err = openStores(&config.Config{StateDB: filepath.Join(dir, "no", "such", "dir.db")})
	if err == nil {
		t.Errorf("no error for a bad path")
	}
}
