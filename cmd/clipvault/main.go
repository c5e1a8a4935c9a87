package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrijs2005/clipvault/internal/cli"
	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/dmitrijs2005/clipvault/internal/config"
	"github.com/dmitrijs2005/clipvault/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app := cli.NewApp(cfg, logging.NewDefault())

	if err := app.Run(ctx, commandArgs(os.Args[1:])); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, common.ErrInvalidPassword) || errors.Is(err, common.ErrNotInitialized) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// commandArgs strips the global flags (and their values) that the config
// layer already consumed, leaving the subcommand and its own arguments.
func commandArgs(args []string) []string {
	valueFlags := map[string]struct{}{
		"-c": {}, "-config": {}, "-d": {}, "-peer": {}, "-interval": {}, "-max": {},
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if _, ok := valueFlags[arg]; ok {
			i++ // skip the flag's value too
			continue
		}
		if eq := strings.IndexByte(arg, '='); eq > 0 {
			if _, ok := valueFlags[arg[:eq]]; ok {
				continue
			}
		}
		out = append(out, arg)
	}
	return out
}
