package command

import (
	"testing"

	"github.com/urfave/cli/v2"
)

func TestApp(t *testing.T) {
	app := App()
	if app == nil {
		t.Fatal("App() returned nil")
	}

	if app.Name != "metermesh-cli" {
		t.Errorf("Name = %q, want %q", app.Name, "metermesh-cli")
	}
	if app.Usage == "" {
		t.Error("Usage should not be empty")
	}

	commandNames := make(map[string]bool)
	for _, cmd := range app.Commands {
		commandNames[cmd.Name] = true
	}

	requiredCommands := []string{"scrape", "version"}
	for _, name := range requiredCommands {
		if !commandNames[name] {
			t.Errorf("missing required command: %s", name)
		}
	}
}

func TestApp_GlobalFlags(t *testing.T) {
	app := App()

	flagNames := make(map[string]bool)
	for _, flag := range app.Flags {
		flagNames[flag.Names()[0]] = true
	}

	requiredFlags := []string{"endpoint", "verbose"}
	for _, name := range requiredFlags {
		if !flagNames[name] {
			t.Errorf("missing required flag: %s", name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	flags := globalFlags()

	if len(flags) == 0 {
		t.Error("globalFlags should return flags")
	}

	for _, flag := range flags {
		if len(flag.Names()) == 0 {
			t.Error("flag should have at least one name")
		}
	}
}

func TestParseGlobalFlags(t *testing.T) {
	app := &cli.App{
		Flags: globalFlags(),
		Action: func(c *cli.Context) error {
			flags := ParseGlobalFlags(c)

			if flags.Endpoint != "test-host:9191" {
				t.Errorf("Endpoint = %q, want %q", flags.Endpoint, "test-host:9191")
			}
			if !flags.Verbose {
				t.Error("Verbose should be true")
			}
			return nil
		},
	}

	args := []string{
		"test",
		"--endpoint", "test-host:9191",
		"--verbose",
	}

	if err := app.Run(args); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestParseGlobalFlags_Defaults(t *testing.T) {
	app := &cli.App{
		Flags: globalFlags(),
		Action: func(c *cli.Context) error {
			flags := ParseGlobalFlags(c)

			if flags.Endpoint != "localhost:9090" {
				t.Errorf("Endpoint = %q, want %q", flags.Endpoint, "localhost:9090")
			}
			if flags.Verbose {
				t.Error("Verbose should default to false")
			}
			return nil
		},
	}

	if err := app.Run([]string{"test"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestEndpointClient(t *testing.T) {
	app := &cli.App{
		Flags: globalFlags(),
		Action: func(c *cli.Context) error {
			client := EndpointClient(c)
			if client == nil {
				t.Fatal("EndpointClient() returned nil")
			}
			if client.BaseURL() != "http://localhost:9090" {
				t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), "http://localhost:9090")
			}
			return nil
		},
	}

	if err := app.Run([]string{"test"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}
