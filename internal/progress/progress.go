// Package progress renders per-stage progress feedback for the CLI.
// Bars are cosmetic: pipeline stages do not report fractional progress,
// so each stage gets one tracker that fills on completion.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
)

// Task tracks one pipeline stage.
type Task interface {
	// Done marks the stage as completed successfully.
	Done()
	// Fail marks the stage as failed.
	Fail()
}

// Reporter starts stage tasks and owns the underlying renderer.
type Reporter interface {
	StartTask(message string) Task
	// Stop flushes and stops rendering. Safe to call more than once.
	Stop()
}

// Mode selects the rendering style.
type Mode int

const (
	// ModeBars renders animated progress bars.
	ModeBars Mode = iota
	// ModePlain prints one line per stage. Used for non-terminal output.
	ModePlain
	// ModeQuiet suppresses all progress output.
	ModeQuiet
)

// New returns a Reporter writing to out in the given mode. A nil out
// defaults to stderr so progress never mixes with piped report output.
func New(out io.Writer, mode Mode) Reporter {
	if out == nil {
		out = os.Stderr
	}
	switch mode {
	case ModeQuiet:
		return quietReporter{}
	case ModePlain:
		return &plainReporter{out: out}
	default:
		return newBarReporter(out)
	}
}

// IsTerminal reports whether f is attached to a character device.
// Callers use it to pick ModePlain for redirected output.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

type quietReporter struct{}

func (quietReporter) StartTask(string) Task { return quietTask{} }
func (quietReporter) Stop()                 {}

type quietTask struct{}

func (quietTask) Done() {}
func (quietTask) Fail() {}

type plainReporter struct {
	out io.Writer
}

func (r *plainReporter) StartTask(message string) Task {
	return &plainTask{out: r.out, message: message}
}

func (r *plainReporter) Stop() {}

type plainTask struct {
	out     io.Writer
	message string
}

func (t *plainTask) Done() {
	fmt.Fprintf(t.out, "%s: done\n", t.message)
}

func (t *plainTask) Fail() {
	fmt.Fprintf(t.out, "%s: failed\n", t.message)
}

type barReporter struct {
	pw progress.Writer
}

func newBarReporter(out io.Writer) *barReporter {
	pw := progress.NewWriter()
	pw.SetOutputWriter(out)
	pw.SetTrackerLength(30)
	pw.SetUpdateFrequency(50 * time.Millisecond)
	pw.SetStyle(progress.StyleDefault)
	pw.Style().Visibility.ETA = false
	pw.Style().Visibility.Value = false
	pw.Style().Visibility.Time = false
	go pw.Render()
	return &barReporter{pw: pw}
}

func (r *barReporter) StartTask(message string) Task {
	t := &progress.Tracker{Message: message, Total: 1}
	r.pw.AppendTracker(t)
	return &barTask{tracker: t}
}

func (r *barReporter) Stop() {
	// Let the renderer paint final tracker states before stopping.
	for i := 0; i < 10 && r.pw.LengthActive() > 0; i++ {
		time.Sleep(20 * time.Millisecond)
	}
	r.pw.Stop()
}

type barTask struct {
	tracker *progress.Tracker
}

func (t *barTask) Done() {
	t.tracker.SetValue(1)
	t.tracker.MarkAsDone()
}

func (t *barTask) Fail() {
	t.tracker.MarkAsErrored()
}
