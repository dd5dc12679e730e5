package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/banksean/doco"
	"github.com/banksean/doco/engine"
	"github.com/banksean/doco/paths"
	kongcompletion "github.com/jotaen/kong-completion"
	"github.com/mitchellh/go-homedir"
	"github.com/posener/complete"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Context struct {
	LogFile  string
	LogLevel string
	host     doco.Host
	engine   *engine.Engine
	launcher *doco.Launcher
}

type CLI struct {
	Engine   string `default:"docker" env:"DOCO_ENGINE" placeholder:"<docker|podman|path>" help:"docker-compatible container CLI to invoke"`
	LogFile  string `default:"${defaultLogFile}" placeholder:"<log-file-path>" help:"location of log file"`
	LogLevel string `default:"info" enum:"debug,info,warn,error" placeholder:"<debug|info|warn|error>" help:"the logging level (debug, info, warn, error)"`

	Up         UpCmd                     `cmd:"" default:"withargs" help:"build the workspace image and open a shell in a container with the current directory mounted (default)"`
	Init       InitCmd                   `cmd:"" help:"write a default doco.yaml to the current directory"`
	Doctor     DoctorCmd                 `cmd:"" help:"check that the engine, doco.yaml and Dockerfile are usable"`
	Logs       LogsCmd                   `cmd:"" help:"print doco's log file in a readable form"`
	Doc        DocCmd                    `cmd:"" help:"print complete command help formatted as markdown"`
	Version    VersionCmd                `cmd:"" help:"print version infomation about this command"`
	Completion kongcompletion.Completion `cmd:"" help:"print shell code that sets up tab completion"`
}

func (c *CLI) initSlog() {
	var level slog.Level
	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// lumberjack creates the directory on first write.
	w := &lumberjack.Logger{
		Filename:   c.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	slog.Info("slog initialized", "args", os.Args)
}

// currentHost captures the process state the launcher depends on.
func currentHost() (doco.Host, error) {
	wd, err := os.Getwd()
	if err != nil {
		return doco.Host{}, fmt.Errorf("getting working directory: %w", err)
	}
	home, err := homedir.Dir()
	if err != nil {
		return doco.Host{}, fmt.Errorf("finding home directory: %w", err)
	}
	return doco.Host{WorkDir: wd, HomeDir: home, Environ: os.Environ()}, nil
}

const description = `Build a project's dev container image and open a shell in it.

Reads doco.yaml from the current directory, builds the image from the
Dockerfile next to it, and runs it with the current directory mounted.
Run "doco init" to create a starting doco.yaml.`

func main() {
	var cli CLI

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	parser := kong.Must(&cli,
		kong.Name("doco"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Vars{"defaultLogFile": paths.LogFile()},
		kong.Configuration(kongyaml.Loader, paths.UserConfig()),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	kongcompletion.Register(parser, kongcompletion.WithPredictor("file", complete.PredictFiles("*")))

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	cli.initSlog()

	host, err := currentHost()
	kctx.FatalIfErrorf(err)

	eng := engine.New(cli.Engine, engine.NewExecRunner(os.Stdin, os.Stdout, os.Stderr))
	err = kctx.Run(&Context{
		LogFile:  cli.LogFile,
		LogLevel: cli.LogLevel,
		host:     host,
		engine:   eng,
		launcher: doco.NewLauncher(host, eng, os.Stderr),
	})
	if err != nil {
		slog.ErrorContext(ctx, "main", "command", kctx.Command(), "error", err)
	}
	kctx.FatalIfErrorf(err)
}
