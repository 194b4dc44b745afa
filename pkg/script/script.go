package script

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/matzehuels/treedump/pkg/dump"
	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/observability"
	"github.com/matzehuels/treedump/pkg/toolkit"
)

// LogFunc receives the text captured from one stream of a run.
type LogFunc func(text string, userData any)

// Bridge executes source code against a live object graph.
type Bridge interface {
	Run(ctx context.Context, source string, stdout, stderr LogFunc, userData any) error
}

// Options configures an Interpreter.
type Options struct {
	// Root is the live tree exposed to scripts. It can be replaced later
	// with SetRoot.
	Root *toolkit.Widget
	// Prefix of synthetic ids used by treedump.Dump.
	Prefix string
	// Logger receives one debug line per run. Nil discards.
	Logger *log.Logger
}

// Result is the outcome of one Eval.
type Result struct {
	ID       string        `json:"id"`
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	Value    string        `json:"value,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Interpreter is a Bridge backed by yaegi. Runs are serialized.
type Interpreter struct {
	mu     sync.Mutex
	in     *interp.Interpreter
	stdout capture
	stderr capture
	root   atomic.Pointer[toolkit.Widget]
	prefix string
	logger *log.Logger
}

var _ Bridge = (*Interpreter)(nil)

// New starts an interpreter.
func New(opts Options) (*Interpreter, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	i := &Interpreter{prefix: opts.Prefix, logger: logger}
	i.root.Store(opts.Root)

	i.in = interp.New(interp.Options{
		Stdout: &i.stdout,
		Stderr: &i.stderr,
	})
	if err := i.in.Use(stdlib.Symbols); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load stdlib symbols")
	}
	// Scripts writing to os.Stdout or os.Stderr directly land in the
	// per-run captures too.
	var stdout, stderr io.Writer = &i.stdout, &i.stderr
	if err := i.in.Use(interp.Exports{"os/os": {
		"Stdout": reflect.ValueOf(&stdout).Elem(),
		"Stderr": reflect.ValueOf(&stderr).Elem(),
	}}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "redirect os streams")
	}
	if err := i.in.Use(i.exports()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load treedump symbols")
	}
	i.in.ImportUsed()
	return i, nil
}

// SetRoot replaces the tree scripts operate on.
func (i *Interpreter) SetRoot(root *toolkit.Widget) { i.root.Store(root) }

// Root returns the tree scripts operate on.
func (i *Interpreter) Root() *toolkit.Widget { return i.root.Load() }

// Run executes source and passes the captured output to the loggers. When
// the last statement is an expression with a value, the value is appended
// to the standard output text. Either logger may be nil.
func (i *Interpreter) Run(ctx context.Context, source string, stdout, stderr LogFunc, userData any) error {
	res, err := i.Eval(ctx, source)
	if stdout != nil {
		out := res.Stdout
		if res.Value != "" {
			out += res.Value + "\n"
		}
		stdout(out, userData)
	}
	if stderr != nil {
		stderr(res.Stderr, userData)
	}
	return err
}

// Eval executes source and returns what it wrote. On failure the returned
// Result is still filled in and its Stderr ends with the error text.
func (i *Interpreter) Eval(ctx context.Context, source string) (Result, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	res := Result{ID: uuid.NewString()}
	var outBuf, errBuf bytes.Buffer
	i.stdout.swap(&outBuf)
	i.stderr.swap(&errBuf)

	start := time.Now()
	v, err := i.in.EvalWithContext(ctx, source)
	res.Duration = time.Since(start)

	i.stdout.swap(nil)
	i.stderr.swap(nil)

	if err != nil {
		fmt.Fprintln(&errBuf, err)
		err = errors.Wrap(errors.ErrCodeScript, err, "run %s", res.ID)
	} else {
		res.Value = formatValue(v)
	}
	res.Stdout = outBuf.String()
	res.Stderr = errBuf.String()

	observability.Script().OnScriptRun(ctx, res.ID, res.Duration, err)
	i.logger.Debug("script run", "id", res.ID, "duration", res.Duration, "error", err)
	return res, err
}

// formatValue renders the value of the last expression, or "" when
// there is nothing worth showing.
func formatValue(v reflect.Value) string {
	if !v.IsValid() || !v.CanInterface() {
		return ""
	}
	switch v.Kind() {
	case reflect.Func:
		return ""
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan:
		if v.IsNil() {
			return ""
		}
	}
	return fmt.Sprintf("%v", v.Interface())
}

// capture is an io.Writer whose destination changes per run. Writes
// outside a run are dropped.
type capture struct {
	mu  sync.Mutex
	buf *bytes.Buffer
}

func (c *capture) swap(buf *bytes.Buffer) {
	c.mu.Lock()
	c.buf = buf
	c.mu.Unlock()
}

func (c *capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.buf == nil {
		return len(p), nil
	}
	return c.buf.Write(p)
}

// dumpRoot renders the current root as markup.
func (i *Interpreter) dumpRoot() (string, error) {
	root := i.Root()
	if root == nil {
		return "", errors.New(errors.ErrCodeNotFound, "no live tree")
	}
	var buf bytes.Buffer
	if err := dump.New(toolkit.Provider{}, dump.Options{Prefix: i.prefix}).Dump(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}
