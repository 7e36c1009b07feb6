package main

import (
	"log"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/robclancy/middleman/internal/tlogger"
	"github.com/robclancy/middleman/pkg/builder"
	"github.com/robclancy/middleman/pkg/config"
	"github.com/robclancy/middleman/pkg/server"
	"github.com/robclancy/middleman/pkg/sitemap"
)

var CLI struct {
	Build CommandBuild `cmd:"" aliases:"b" help:"Builds or rebuilds the project."`
	Serve CommandServe `cmd:"" aliases:"s" help:"Run a live dev server."`

	ConfigFile string `short:"c" help:"configuration file path (optional)"`
}

type CommandBuild struct {
	SrcDir   string `help:"Source directory." type:"existingdir"`
	BuildDir string `help:"Build output."`

	Verbose int `short:"v" help:"Print verbose output." type:"counter"`
}

type CommandServe struct {
	SrcDir   string `help:"Source directory." type:"existingdir"`
	BuildDir string `help:"Build output."`
	Build    bool   `negatable:"" help:"Don't run build."`

	Port int `short:"p" help:"Listener port"`

	Verbose int `short:"v" help:"Print verbose output." type:"counter"`
}

func main() {
	ctx := kong.Parse(&CLI, kong.UsageOnError())

	err := config.Init(CLI.ConfigFile)
	if err != nil {
		log.Fatal(err)
	}

	err = ctx.Run(ctx)
	if err != nil {
		ctx.PrintUsage(false)
	}
}

func applyVerbose(v int) {
	switch v {
	case 0:
		tlogger.ApplyLogLevel("info")
	case 1:
		tlogger.ApplyLogLevel("debug")
	default:
		tlogger.ApplyLogLevel("all")
	}
}

func effectiveConfig(srcDir, buildDir string) *config.Configuration {
	cfg := *config.Config
	if srcDir != "" {
		cfg.SrcDir = srcDir
	}
	if buildDir != "" {
		cfg.BuildDir = buildDir
	}
	return &cfg
}

func (r *CommandBuild) Run(ctx *kong.Context) error {
	applyVerbose(r.Verbose)

	cfg := effectiveConfig(r.SrcDir, r.BuildDir)

	site, err := sitemap.New(cfg)
	if err != nil {
		return err
	}

	buildtool := builder.NewBuilder(cfg.SrcDir, cfg.BuildDir, site, cfg.Minify)
	err = buildtool.Build()
	if err != nil {
		tlogger.Fatal("msg", "Build failed", "err", err)
	}

	return nil
}

func (r *CommandServe) Run(ctx *kong.Context) error {
	applyVerbose(r.Verbose)

	cfg := effectiveConfig(r.SrcDir, r.BuildDir)
	if r.Port <= 0 {
		r.Port = cfg.ServeConfig.Port
	}

	site, err := sitemap.New(cfg)
	if err != nil {
		return err
	}

	serv := server.NewServer(cfg.SrcDir, cfg.BuildDir, strconv.Itoa(r.Port), cfg.ServeConfig.Redirect404, site, cfg.Minify, cfg.DataDir)

	return serv.Start(!r.Build)
}
