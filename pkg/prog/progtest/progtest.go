// Package progtest provides a framework for testing subprograms.
package progtest

import (
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"arbor.elv.sh/pkg/prog"
)

// Case is a test case for Test, created with ThatArbor.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitCode int
	out, err output
}

type output struct {
	content string
	partial bool
}

func (o output) match(s string) bool {
	if o.partial {
		return strings.Contains(s, o.content)
	}
	return s == o.content
}

// ThatArbor returns a new Case with the specified CLI arguments. The first
// argument, the program name, is supplied implicitly.
//
// The new Case expects the program to exit with 0 and write nothing.
func ThatArbor(args ...string) Case {
	return Case{args: append([]string{"arbor"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to stdin.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark that a case expects the
// program to exit with 0 and write nothing.
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program to exit with
// the given code.
func (c Case) ExitsWith(code int) Case {
	c.want.exitCode = code
	return c
}

// WritesStdout returns an altered Case that requires the program to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.out = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program to
// write output to stdout that contains the given text.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.out = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.err = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program to
// write output to stderr that contains the given text.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.err = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			exit, stdout, stderr := Run(t, p, c.stdin, c.args...)
			if exit != c.want.exitCode {
				t.Errorf("got exit code %v, want %v", exit, c.want.exitCode)
			}
			if !c.want.out.match(stdout) {
				t.Errorf("got stdout %q, want %q (partial=%v)",
					stdout, c.want.out.content, c.want.out.partial)
			}
			if !c.want.err.match(stderr) {
				t.Errorf("got stderr %q, want %q (partial=%v)",
					stderr, c.want.err.content, c.want.err.partial)
			}
		})
	}
}

// Run runs p with the given stdin and arguments, and returns the exit code
// and the output written to stdout and stderr.
func Run(t *testing.T, p prog.Program, stdin string, args ...string) (int, string, string) {
	t.Helper()
	r0, w0 := mustPipe(t)
	r1, w1 := mustPipe(t)
	r2, w2 := mustPipe(t)

	go func() {
		w0.WriteString(stdin)
		w0.Close()
	}()
	var wg sync.WaitGroup
	var stdout, stderr string
	wg.Add(2)
	go func() { stdout = readAll(r1); wg.Done() }()
	go func() { stderr = readAll(r2); wg.Done() }()

	exit := prog.Run([3]*os.File{r0, w1, w2}, args, p)
	w1.Close()
	w2.Close()
	wg.Wait()
	r0.Close()
	return exit, stdout, stderr
}

func mustPipe(t *testing.T) (*os.File, *os.File) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	return r, w
}

func readAll(r *os.File) string {
	b, _ := io.ReadAll(r)
	r.Close()
	return string(b)
}
