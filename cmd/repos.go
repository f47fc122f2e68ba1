package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/vcsaturninus/chang-go/internal/repolist"
)

// ReposCmd returns the repos command, which resolves a repository list
// file and prints the result without touching any repository.
func ReposCmd() *cli.Command {
	return &cli.Command{
		Name:   "repos",
		Usage:  "Show the repositories a list file resolves to",
		Flags:  listFlags(),
		Action: reposAction,
	}
}

func reposAction(c *cli.Context) error {
	repos, err := readRepoList(c)
	if err != nil {
		return err
	}
	return writeRepoTable(os.Stdout, repos)
}

func writeRepoTable(w io.Writer, repos []repolist.Spec) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tURL")
	for _, r := range repos {
		fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.URL)
	}
	return tw.Flush()
}
