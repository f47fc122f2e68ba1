package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/vcsaturninus/chang-go/internal/changelog"
	"github.com/vcsaturninus/chang-go/internal/filter"
	"github.com/vcsaturninus/chang-go/internal/git"
	"github.com/vcsaturninus/chang-go/internal/output"
)

func generateFlags() []cli.Flag {
	return append(listFlags(),
		&cli.StringFlag{
			Name:    "start-tag",
			Aliases: []string{"s"},
			Usage:   "Tag or commit to start from (inclusive)",
		},
		&cli.StringFlag{
			Name:    "end-tag",
			Aliases: []string{"e"},
			Usage:   "Do not look at commits past this tag or commit (inclusive)",
		},
		&cli.StringSliceFlag{
			Name:  "match",
			Usage: "Keep only commit lines matching PATTERN (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Drop commit lines matching PATTERN (repeatable)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the changelog to FILE instead of stdout",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (text, json, markdown, csv)",
		},
		&cli.BoolFlag{
			Name:    "clean",
			Aliases: []string{"c"},
			Usage:   "Start fresh: remove previously cloned repositories first",
		},
		&cli.BoolFlag{
			Name:  "reset",
			Usage: "Hard-reset existing clones to the fetched remote tip",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Do not print progress messages",
		},
		&cli.StringFlag{
			Name:  "workdir",
			Usage: "Directory to keep repository clones under",
		},
		&cli.StringFlag{
			Name:  "backend",
			Usage: "Git backend (native, cli)",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to configuration file",
		},
	)
}

func generateAction(c *cli.Context) error {
	if c.NumFlags() == 0 && c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	repos, err := readRepoList(c)
	if err != nil {
		return err
	}

	match, err := filter.Compile(cfg.Filters.Match)
	if err != nil {
		return fmt.Errorf("match filter: %w", err)
	}
	exclude, err := filter.Compile(cfg.Filters.Exclude)
	if err != nil {
		return fmt.Errorf("exclude filter: %w", err)
	}

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	client, err := git.NewClient(git.Options{
		Backend: git.Backend(cfg.Backend),
		Timeout: cfg.Timeout(),
	})
	if err != nil {
		return err
	}

	if c.Bool("clean") {
		if err := os.RemoveAll(cfg.Workdir); err != nil {
			return fmt.Errorf("clean workdir: %w", err)
		}
	}

	mode := git.RefreshFetch
	if c.Bool("reset") {
		mode = git.RefreshReset
	}

	gen, err := changelog.NewGenerator(client, changelog.Options{
		Workdir:  cfg.Workdir,
		Mode:     mode,
		Progress: output.NewConsole(cfg.Output.Quiet),
	})
	if err != nil {
		return err
	}

	rng := git.RangeSpec{Start: c.String("start-tag"), End: c.String("end-tag")}
	report, err := gen.Generate(c.Context, repos, rng, match, exclude)
	if err != nil {
		return err
	}

	return output.NewWriter(format).Write(report, output.Options{Path: c.String("output")})
}
