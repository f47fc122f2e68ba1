package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/vcsaturninus/chang-go/config"
	"github.com/vcsaturninus/chang-go/internal/repolist"
)

// App creates the CLI application. Running it without a subcommand
// generates a changelog; subcommands cover the supporting chores.
func App() *cli.App {
	return &cli.App{
		Name:    "chang",
		Usage:   "Changelog generator for sets of git repositories",
		Version: "1.0.0",
		Flags:   generateFlags(),
		Action:  generateAction,
		Commands: []*cli.Command{
			ReposCmd(),
			InitCmd(),
		},
	}
}

// Flags shared by every command that reads a repository list.
func listFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "Read the list of repositories from FILE, one URL per line",
		},
		&cli.StringSliceFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Only process the named repositories from the input file (glob patterns allowed)",
		},
	}
}

// loadConfig loads configuration from file or defaults and applies the
// CLI overrides on top.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if workdir := c.String("workdir"); workdir != "" {
		cfg.Workdir = workdir
	}
	if backend := c.String("backend"); backend != "" {
		cfg.Backend = backend
	}
	if match := c.StringSlice("match"); len(match) > 0 {
		cfg.Filters.Match = match
	}
	if exclude := c.StringSlice("exclude"); len(exclude) > 0 {
		cfg.Filters.Exclude = exclude
	}
	if format := c.String("format"); format != "" {
		cfg.Output.Format = format
	}
	if c.Bool("quiet") {
		cfg.Output.Quiet = true
	}

	return cfg, nil
}

// readRepoList parses the list file named by --input, restricted to the
// names given with --repo.
func readRepoList(c *cli.Context) ([]repolist.Spec, error) {
	path := c.String("input")
	if path == "" {
		return nil, fmt.Errorf("no repository list given (use --input FILE)")
	}
	repos, err := repolist.ParseFile(path, c.StringSlice("repo"))
	if err != nil {
		return nil, fmt.Errorf("read repository list: %w", err)
	}
	return repos, nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
