package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/metermesh-go/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Print build information",
		Action: versionAction,
	}
}

func versionAction(c *cli.Context) error {
	info := buildinfo.Get()

	fmt.Fprintf(c.App.Writer, "metermesh-cli %s\n", info.Version)
	fmt.Fprintf(c.App.Writer, "  commit:     %s\n", info.Commit)
	fmt.Fprintf(c.App.Writer, "  built:      %s\n", info.BuildTime)
	fmt.Fprintf(c.App.Writer, "  go version: %s\n", info.GoVersion)
	return nil
}
