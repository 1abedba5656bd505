package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/todolist/internal/cli"
	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand); they override config and env.
	// Defaults live in config.Default, so only flags set explicitly are applied.
	def := config.Default()
	configFile := flag.String("config", "", "extra TOML config file")
	dataFile := flag.String("file", def.DataFile, "path of the todo list")
	theme := flag.String("theme", def.Theme, "classic, neon or mono")
	color := flag.String("color", def.Color, "auto, always or never")
	logLevel := flag.String("log-level", def.LogLevel, "debug, info, warn or error")
	group := flag.Bool("group", def.Group, "group output by pending/done")
	flag.Usage = func() { cli.PrintHelp(os.Stderr); flag.PrintDefaults() }
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.DataFile = *dataFile
		case "theme":
			cfg.Theme = *theme
		case "color":
			cfg.Color = *color
		case "log-level":
			cfg.LogLevel = *logLevel
		case "group":
			cfg.Group = *group
		}
	})
	if err := cfg.Validate(); err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(2)
	}

	ui.SetColorMode(cfg.Color)
	ui.SetTheme(cfg.Theme)
	logger := logging.New(os.Stderr, cfg.LogLevel)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stdout)
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		DataFile: cfg.DataFile,
		Title:    cfg.Title,
		Group:    cfg.Group,
		Logger:   logger,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
