package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/jgivc/sitebundle/internal/app"
)

var CLI struct {
	Config  string `short:"c" help:"Path to config file" default:"config.yml"`
	SiteMap string `short:"s" help:"Path to sitemap file, overrides the config value"`
	Verbose bool   `short:"v" help:"Enable debug logging"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("sitebundle"),
		kong.Description("Assemble the sites listed in a sitemap into a single output folder."),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Building...")

	a := app.New(app.Options{
		ConfigPath: CLI.Config,
		SiteMap:    CLI.SiteMap,
		Verbose:    CLI.Verbose,
	})

	if err := a.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Build failed: %s\n", err)
		stop()
		os.Exit(1)
	}

	fmt.Println("Done.")
}
