// Package dispatch searches many files concurrently and prints one block
// of results per file as each search completes.
package dispatch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	goerrors "github.com/go-errors/errors"
	"github.com/hashicorp/go-multierror"

	"github.com/TimelordUK/mgrep/internal/config"
	"github.com/TimelordUK/mgrep/internal/lines"
	"github.com/TimelordUK/mgrep/internal/logger"
	"github.com/TimelordUK/mgrep/internal/render"
	"github.com/TimelordUK/mgrep/internal/scan"
	"github.com/TimelordUK/mgrep/internal/source"
)

// ErrNoFiles is returned by Run when there is nothing to search
var ErrNoFiles = errors.New("no files to search")

// FileResult is the outcome of searching one file
type FileResult struct {
	Path  string
	Lines []string
	Err   error // *OpenError or *WorkerFault
}

// OpenError reports a file that could not be opened
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// WorkerFault reports a worker that panicked while searching a file
type WorkerFault struct {
	Path string
	Err  *goerrors.Error
}

func (f *WorkerFault) Error() string {
	return f.Err.Error()
}

func (f *WorkerFault) Unwrap() error {
	return f.Err.Err
}

// Stack returns the stack trace captured when the panic was recovered
func (f *WorkerFault) Stack() string {
	return string(f.Err.Stack())
}

// Summary describes a completed run
type Summary struct {
	Files    int   // files requested
	Matched  int   // files that produced at least one output line
	Lines    int   // output lines across all files
	Failures error // per-file errors, nil when every file was searched
}

// Dispatcher fans a search out over files, one worker per file
type Dispatcher struct {
	cfg    *config.RunConfig
	out    io.Writer
	errOut io.Writer
	styles *render.Styles
	open   source.OpenFunc
	log    *logger.ConsoleLogger
}

// Option customizes a Dispatcher
type Option func(*Dispatcher)

// WithOpener replaces the function used to open each path
func WithOpener(open source.OpenFunc) Option {
	return func(d *Dispatcher) {
		d.open = open
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(l *logger.ConsoleLogger) Option {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// New creates a dispatcher writing results to out and per-file errors to errOut
func New(cfg *config.RunConfig, out, errOut io.Writer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:    cfg,
		out:    out,
		errOut: errOut,
		styles: render.NewStyles(out, errOut),
		open:   source.Open,
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run searches every path and prints each file's block in the order the
// workers finish. It returns only after every worker is done. Per-file
// failures are printed and collected in the summary; they are not errors
// of the run.
func (d *Dispatcher) Run(paths []string) (*Summary, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}

	results := make(chan FileResult)
	var wg sync.WaitGroup

	var sem chan struct{}
	if n := d.cfg.MaxWorkers(); n > 0 {
		sem = make(chan struct{}, n)
	}

	for _, path := range paths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()

			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			results <- d.searchFile(path)
		}(path)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	summary := &Summary{Files: len(paths)}
	var failures *multierror.Error

	for res := range results {
		d.print(res)

		if res.Err != nil {
			failures = multierror.Append(failures, res.Err)
			continue
		}
		if len(res.Lines) > 0 {
			summary.Matched++
		}
		summary.Lines += len(res.Lines)
	}

	summary.Failures = failures.ErrorOrNil()
	return summary, nil
}

// searchFile runs in its own goroutine. A panic is confined to this file.
func (d *Dispatcher) searchFile(path string) (res FileResult) {
	res.Path = path

	defer func() {
		if r := recover(); r != nil {
			fault := &WorkerFault{Path: path, Err: goerrors.Wrap(r, 2)}
			d.log.Debugf("worker for %s panicked: %v\n%s", path, r, fault.Stack())
			res = FileResult{Path: path, Err: fault}
		}
	}()

	d.log.Debugf("searching %s", path)

	src, err := d.open(path)
	if err != nil {
		res.Err = &OpenError{Path: path, Err: err}
		return res
	}
	defer src.Close()

	scanner := scan.New(d.cfg, func(line lines.Line) {
		d.log.Tracef("%s: skipped line %d: %v", path, line.Number, line.Err)
	})
	res.Lines = scanner.ScanLines(src.Lines())

	d.log.Debugf("finished %s: %d lines", path, len(res.Lines))
	return res
}

// print writes one result as a single write so blocks never interleave
func (d *Dispatcher) print(res FileResult) {
	var openErr *OpenError
	var fault *WorkerFault

	switch {
	case errors.As(res.Err, &openErr):
		d.write(d.errOut, d.styles.OpenError(res.Path, openCause(openErr.Err))+"\n")
	case errors.As(res.Err, &fault):
		d.write(d.errOut, d.styles.WorkerError(res.Path, fault)+"\n")
	case res.Err != nil:
		d.write(d.errOut, d.styles.WorkerError(res.Path, res.Err)+"\n")
	default:
		var b strings.Builder
		b.WriteString(d.styles.Header(res.Path))
		b.WriteByte('\n')
		for _, line := range res.Lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		d.write(d.out, b.String())
	}
}

// openCause strips the path from an *os.PathError
func openCause(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}

func (d *Dispatcher) write(w io.Writer, s string) {
	if _, err := io.WriteString(w, s); err != nil {
		d.log.Errorf("write output: %v", err)
	}
}
