package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/vcsaturninus/chang-go/config"
)

// InitCmd returns the init command, which writes a default
// configuration file for later editing.
func InitCmd() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write a default configuration file",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file",
			},
		},
		Action: initAction,
	}
}

func initAction(c *cli.Context) error {
	path := config.FileName
	if c.NArg() > 0 {
		path = c.Args().First()
	}

	if !c.Bool("force") {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	return config.SaveConfig(config.DefaultConfig(), path)
}
