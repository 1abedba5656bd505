package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store/jsonstore"
	"github.com/idilsaglam/todolist/internal/tui"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Options tune behavior from root flags and config.
type Options struct {
	DataFile string // path of the JSON list
	Title    string // title for a list created from scratch
	Group    bool   // list grouped by pending/done

	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger

	// Interactive runs the TUI; replaced in tests.
	Interactive func(*model.List) (bool, error)
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.DataFile == "" {
		o.DataFile = jsonstore.DefaultFileName
	}
	if o.Title == "" {
		o.Title = model.DefaultTitle
	}
	if o.Interactive == nil {
		o.Interactive = tui.Run
	}
}

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type runner struct {
	opt Options
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	r := &runner{opt: opt}

	if len(args) == 0 {
		PrintHelp(opt.Stdout)
		return exitUsage
	}
	cmd, a := args[0], args[1:]
	r.opt.Logger.Debug("dispatch", "cmd", cmd, "args", a)

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return exitOK

	case "ls":
		return r.view(func(l *model.List) { ui.Panel(r.opt.Stdout, ui.ListLines(l, r.opt.Group)) })

	case "show":
		return r.view(func(l *model.List) { fmt.Fprintln(r.opt.Stdout, l) })

	case "status":
		return r.view(func(l *model.List) {
			d, p := l.Stats()
			fmt.Fprintf(r.opt.Stdout, "done: %d  pending: %d  all done: %t\n", d, p, l.AllDone())
		})

	case "completed":
		return r.view(func(l *model.List) { fmt.Fprintln(r.opt.Stdout, l.DoneItems()) })

	case "pending":
		return r.view(func(l *model.List) { fmt.Fprintln(r.opt.Stdout, l.PendingItems()) })

	case "add":
		return r.add(a)

	case "find":
		if len(a) == 0 {
			return r.usage("usage: todo find <title...>")
		}
		title := strings.Join(a, " ")
		l, code := r.load()
		if l == nil {
			return code
		}
		td, ok := l.FindByTitle(title)
		if !ok {
			ui.Fail(r.opt.Stderr, "not found: "+title)
			return exitError
		}
		r.printTodo(l.IndexOf(title), td)
		return exitOK

	case "at":
		n, code := r.index("at", a)
		if code != exitOK {
			return code
		}
		l, code := r.load()
		if l == nil {
			return code
		}
		td, err := l.ItemAt(n)
		if err != nil {
			return r.indexFail(err)
		}
		r.printTodo(n, td)
		return exitOK

	case "done", "undone":
		n, code := r.index(cmd, a)
		if code != exitOK {
			return code
		}
		return r.mutate(cmd, func(l *model.List) error {
			if cmd == "done" {
				return l.MarkDoneAt(n)
			}
			return l.MarkUndoneAt(n)
		})

	case "mark", "unmark":
		if len(a) == 0 {
			return r.usage("usage: todo " + cmd + " <title...>")
		}
		title := strings.Join(a, " ")
		return r.mutate(cmd, func(l *model.List) error {
			var found bool
			if cmd == "mark" {
				found = l.MarkDone(title)
			} else {
				found = l.MarkUndone(title)
			}
			if !found {
				return fmt.Errorf("not found: %s", title)
			}
			return nil
		})

	case "done-all":
		return r.mutate(cmd, func(l *model.List) error { l.MarkAllDone(); return nil })

	case "undone-all":
		return r.mutate(cmd, func(l *model.List) error { l.MarkAllUndone(); return nil })

	case "rm":
		n, code := r.index("rm", a)
		if code != exitOK {
			return code
		}
		return r.mutate("removed", func(l *model.List) error {
			td, err := l.RemoveAt(n)
			if err == nil {
				fmt.Fprintln(r.opt.Stdout, td)
			}
			return err
		})

	case "shift", "pop":
		return r.mutate(cmd, func(l *model.List) error {
			var (
				td model.Todo
				ok bool
			)
			if cmd == "shift" {
				td, ok = l.Shift()
			} else {
				td, ok = l.Pop()
			}
			if !ok {
				return errEmpty
			}
			fmt.Fprintln(r.opt.Stdout, td)
			return nil
		})

	case "ui":
		return r.interactive()

	case "demo":
		Demo(r.opt.Stdout)
		return exitOK
	}

	ui.Fail(r.opt.Stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(r.opt.Stderr)
	PrintHelp(r.opt.Stderr)
	return exitUsage
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todo - a tiny CLI

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  add [-d desc] <title...>   Add a new item (title can be multiple words)
  ls                         List items in a panel (-group splits pending/done)
  show                       Print the plain list
  status                     Print done/pending counts
  find <title...>            Show the first item with this exact title
  at <index>                 Show the item at 1-based index
  done <index>               Mark item at 1-based index done
  undone <index>             Mark item at 1-based index not done
  mark <title...>            Mark the first item with this title done
  unmark <title...>          Mark the first item with this title not done
  done-all | undone-all      Mark every item done / not done
  rm <index>                 Remove item at 1-based index
  shift | pop                Remove the first / last item
  completed | pending        Print only done / not done items
  ui                         Interactive list
  demo                       Walk through the list operations in memory

Examples:
  todo add "Buy milk"
  todo ls
  todo done 2
  todo mark Go to gym
  todo rm 3
`)
}

// -------------- subcommand impls ----------------

var errEmpty = errors.New("list is empty")

func (r *runner) usage(msg string) int {
	ui.Fail(r.opt.Stderr, msg)
	return exitUsage
}

// index parses a single 1-based index argument into a 0-based position.
func (r *runner) index(cmd string, a []string) (int, int) {
	if len(a) != 1 {
		return 0, r.usage("usage: todo " + cmd + " <index>")
	}
	n, err := strconv.Atoi(a[0])
	if err != nil {
		return 0, r.usage(cmd + ": not a number: " + a[0])
	}
	return n - 1, exitOK
}

func (r *runner) indexFail(err error) int {
	ui.Fail(r.opt.Stderr, err.Error())
	fmt.Fprintln(r.opt.Stderr, ui.Dim("Hint: run `todo ls` to see valid indexes"))
	return exitUsage
}

func (r *runner) load() (*model.List, int) {
	l, err := jsonstore.Load(r.opt.DataFile)
	if err != nil {
		ui.Fail(r.opt.Stderr, "load: "+err.Error())
		return nil, exitError
	}
	if l.Len() == 0 && l.Title() == model.DefaultTitle {
		l.SetTitle(r.opt.Title)
	}
	r.opt.Logger.Debug("loaded list", "path", r.opt.DataFile, "items", l.Len())
	return l, exitOK
}

func (r *runner) save(l *model.List) int {
	if err := jsonstore.Save(r.opt.DataFile, l); err != nil {
		ui.Fail(r.opt.Stderr, "save: "+err.Error())
		return exitError
	}
	r.opt.Logger.Debug("saved list", "path", r.opt.DataFile, "items", l.Len())
	return exitOK
}

func (r *runner) view(render func(*model.List)) int {
	l, code := r.load()
	if l == nil {
		return code
	}
	render(l)
	return exitOK
}

// mutate loads the list, applies op and saves on success.
func (r *runner) mutate(name string, op func(*model.List) error) int {
	l, code := r.load()
	if l == nil {
		return code
	}
	if err := op(l); err != nil {
		if errors.Is(err, model.ErrIndexOutOfRange) {
			return r.indexFail(err)
		}
		ui.Fail(r.opt.Stderr, name+": "+err.Error())
		return exitError
	}
	if code := r.save(l); code != exitOK {
		return code
	}
	r.opt.Logger.Info("applied", "op", name)
	ui.OK(r.opt.Stdout, name)
	return exitOK
}

func (r *runner) add(a []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(r.opt.Stderr)
	desc := fs.String("d", "", "description")
	if err := fs.Parse(a); err != nil {
		return exitUsage
	}
	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		return r.usage("usage: todo add [-d desc] <title...>")
	}
	return r.mutate("added", func(l *model.List) error {
		l.Add(model.New(title, *desc))
		return nil
	})
}

func (r *runner) interactive() int {
	l, code := r.load()
	if l == nil {
		return code
	}
	changed, err := r.opt.Interactive(l)
	if err != nil {
		ui.Fail(r.opt.Stderr, "tui: "+err.Error())
		return exitError
	}
	if !changed {
		return exitOK
	}
	if code := r.save(l); code != exitOK {
		return code
	}
	ui.OK(r.opt.Stdout, "saved")
	return exitOK
}

func (r *runner) printTodo(pos int, td model.Todo) {
	fmt.Fprintf(r.opt.Stdout, "%d. %s\n", pos+1, td)
	if td.Description != "" {
		fmt.Fprintln(r.opt.Stdout, "   "+td.Description)
	}
}
