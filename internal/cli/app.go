// Package cli implements the clipvault command-line interface: one-shot
// subcommands over a password-protected clipboard history store.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/clipvault/internal/buildinfo"
	"github.com/dmitrijs2005/clipvault/internal/clipboard"
	"github.com/dmitrijs2005/clipvault/internal/config"
	"github.com/dmitrijs2005/clipvault/internal/logging"
)

// getPassword and confirm are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getPassword = GetPassword
var confirm = Confirm

type App struct {
	cfg    *config.Config
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer

	// newClipboard is a seam so tests can substitute the in-memory fake
	// for the system clipboard.
	newClipboard func() (clipboard.Clipboard, error)
}

func NewApp(cfg *config.Config, log logging.Logger) *App {
	return &App{
		cfg:    cfg,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		newClipboard: func() (clipboard.Clipboard, error) {
			return clipboard.NewSystem()
		},
	}
}

const usage = `Usage: clipvault <command> [arguments] [flags]

Commands:
  init                 set up the store and choose a password
  start                watch the clipboard and record history
  list [-n N] [-verbose]   show stored entries, newest first
  show <id>            print one decrypted entry
  copy <id>            place a stored entry back on the clipboard
  delete <id> [-yes]   remove one entry
  clear [-yes]         remove all entries
  stats                show entry counts and store location
  dump <dir> [-yes]    export decrypted history to a directory
  serve [-addr A]      expose the local store to peers
  version              show build information
  help                 show this message

Global flags:
  -c file      JSON config file
  -d path      store database path
  -peer url    operate against a peer store instead of the local one
  -interval n  clipboard poll interval in milliseconds
  -max n       history bound enforced while watching (0 disables)
`

// Run dispatches the subcommand named by args[0]. Positional arguments
// come before flags, e.g. "clipvault delete 123-456 -yes".
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}

	cmd := args[0]
	rest := args[1:]

	switch cmd {
	case "init":
		return a.initStore(ctx, rest)
	case "start":
		return a.start(ctx)
	case "list":
		return a.list(ctx, rest)
	case "show":
		return a.show(ctx, rest)
	case "copy":
		return a.copyEntry(ctx, rest)
	case "delete":
		return a.delete(ctx, rest)
	case "clear":
		return a.clear(ctx, rest)
	case "stats":
		return a.stats(ctx)
	case "dump":
		return a.dump(ctx, rest)
	case "serve":
		return a.serve(ctx, rest)
	case "version":
		buildinfo.PrintBuildData(a.out)
		return nil
	case "help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// firstPositional returns the first argument that is not a flag. The
// commands that take a positional only have boolean flags, so a plain
// prefix check is enough.
func firstPositional(args []string) string {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			return arg
		}
	}
	return ""
}

// hasFlag reports whether the boolean flag name appears in args.
func hasFlag(args []string, name string) bool {
	for _, arg := range args {
		if arg == name {
			return true
		}
	}
	return false
}
