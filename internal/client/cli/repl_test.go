package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/rentadmin/internal/client/forms"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) rec(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) Help() { _ = f.rec("help", nil) }
func (f *fakeExec) Tab(_ context.Context, a []string) error { return f.rec("tab", a) }
func (f *fakeExec) List(context.Context) error { return f.rec("list", nil) }
func (f *fakeExec) New(context.Context) error { return f.rec("new", nil) }
func (f *fakeExec) Edit(_ context.Context, a []string) error { return f.rec("edit", a) }
func (f *fakeExec) Set(_ context.Context, a []string) error { return f.rec("set", a) }
func (f *fakeExec) Show(context.Context) error { return f.rec("show", nil) }
func (f *fakeExec) ImgAdd(_ context.Context, a []string) error { return f.rec("img-add", a) }
func (f *fakeExec) ImgRm(_ context.Context, a []string) error { return f.rec("img-rm", a) }
func (f *fakeExec) ImgNext(context.Context) error { return f.rec("img-next", nil) }
func (f *fakeExec) ImgPrev(context.Context) error { return f.rec("img-prev", nil) }
func (f *fakeExec) Img(_ context.Context, a []string) error { return f.rec("img", a) }
func (f *fakeExec) Submit(context.Context) error { return f.rec("submit", nil) }
func (f *fakeExec) Cancel(context.Context) error { return f.rec("cancel", nil) }
func (f *fakeExec) Delete(_ context.Context, a []string) error { return f.rec("delete", a) }
func (f *fakeExec) Orphans(_ context.Context, a []string) error {
	return f.rec("orphans", a)
}
func (f *fakeExec) Purge(_ context.Context, a []string) error { return f.rec("purge", a) }

func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		s := strings.TrimSuffix(fmt.Sprintln(a...), "\n")
		lines = append(lines, s)
		return len(s), nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrint(t)

	input := strings.Join([]string{
		"help",
		"tab drivers",
		"list",
		"",
		"new",
		"set name Kigali Express",
		"img-add a.jpg s3://bucket/b.png",
		"img-next",
		"img-prev",
		"img 2",
		"img-rm 1",
		"show",
		"submit",
		"edit 7",
		"cancel",
		"delete 3",
		"orphans history",
		"purge cars 42",
		"quit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "cars" }, bufio.NewScanner(strings.NewReader(input)))

	want := []string{"help", "tab", "list", "new", "set", "img-add", "img-next", "img-prev",
		"img", "img-rm", "show", "submit", "edit", "cancel", "delete", "orphans", "purge"}
	assert.Equal(t, want, exec.calls)
	assert.Equal(t, []string{"name", "Kigali", "Express"}, exec.args[4])
	assert.Equal(t, []string{"a.jpg", "s3://bucket/b.png"}, exec.args[5])
	assert.Equal(t, []string{"cars", "42"}, exec.args[len(exec.args)-1])
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	lines := capturePrint(t)

	input := strings.NewReader("edit\nimg-rm\npurge cars\nimg-add\nset\nfrobnicate\nexit\n")
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	assert.Empty(t, exec.calls)
	out := strings.Join(*lines, "\n")
	assert.Contains(t, out, "Usage: edit <id>")
	assert.Contains(t, out, "Usage: img-rm <n>")
	assert.Contains(t, out, "Usage: purge <kind> <id>")
	assert.Contains(t, out, "Unknown command: frobnicate")
}

func TestRunREPL_PrintsOneLinePerError(t *testing.T) {
	lines := capturePrint(t)

	exec := &fakeExec{err: &forms.ValidationError{Field: "year", Message: "must be between 2000 and 2030"}}
	runREPL(context.Background(), exec, func() string { return "cars | new car" }, bufio.NewScanner(strings.NewReader("submit\n")))

	var errs []string
	for _, l := range *lines {
		if strings.HasPrefix(l, "Error:") {
			errs = append(errs, l)
		}
	}
	assert.Equal(t, []string{"Error: invalid year: must be between 2000 and 2030"}, errs)
	assert.Equal(t, "rentadmin [cars | new car] > ", (*lines)[0])
}

func TestRunREPL_EndOfInput(t *testing.T) {
	capturePrint(t)
	exec := &fakeExec{err: errors.New("x")}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("")))
	assert.Empty(t, exec.calls)
}
