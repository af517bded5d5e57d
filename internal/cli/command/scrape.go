package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

// ScrapeCommand returns the scrape command.
func ScrapeCommand() *cli.Command {
	return &cli.Command{
		Name:    "scrape",
		Aliases: []string{"s"},
		Usage:   "Fetch and print the exposition text from an endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Only print families whose metric name has this prefix",
			},
		},
		Action: scrapeAction,
	}
}

func scrapeAction(c *cli.Context) error {
	client := EndpointClient(c)

	flags := ParseGlobalFlags(c)
	if flags.Verbose {
		fmt.Fprintf(c.App.Writer, "# scraping %s/metrics\n", client.BaseURL())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	body, err := client.Scrape(ctx)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	filter := c.String("filter")
	if filter == "" {
		fmt.Fprint(c.App.Writer, body)
		return nil
	}

	fmt.Fprint(c.App.Writer, filterExposition(body, filter))
	return nil
}

// filterExposition keeps only the exposition lines belonging to metric
// families whose name starts with prefix. HELP and TYPE comment lines
// are matched on the family name they announce; sample lines are
// matched on their leading metric name.
func filterExposition(body, prefix string) string {
	var b strings.Builder

	for _, line := range strings.Split(body, "\n") {
		if line == "" {
			continue
		}

		name := sampleName(line)
		if strings.HasPrefix(name, prefix) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// sampleName extracts the metric name from an exposition line.
func sampleName(line string) string {
	if strings.HasPrefix(line, "# HELP ") || strings.HasPrefix(line, "# TYPE ") {
		rest := line[len("# HELP "):]
		if i := strings.IndexByte(rest, ' '); i > 0 {
			return rest[:i]
		}
		return rest
	}

	// Sample line: name{labels} value or name value
	if i := strings.IndexAny(line, "{ "); i > 0 {
		return line[:i]
	}
	return line
}
