package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"golang.org/x/sys/unix"

	"github.com/regolith-linux/i3xrocks/internal/conf"
	"github.com/regolith-linux/i3xrocks/internal/ini"
	"github.com/regolith-linux/i3xrocks/internal/kv"
	"github.com/regolith-linux/i3xrocks/internal/l10n"
	"github.com/regolith-linux/i3xrocks/internal/logging"
)

// Version is set at link time.
var Version = "dev"

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "i3xrocks-config",
		Version:   Version,
		Usage:     l10n.T("resolve the status bar configuration and print its blocks"),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   l10n.T("read the configuration from `FILE` instead of the default locations"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Aliases: []string{"d"},
				Usage:   l10n.T("also read every file of `DIR`, in lexicographic order"),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   l10n.T("do not fail when the configuration directory cannot be read"),
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "ini",
				Usage: l10n.T("output `FORMAT`: ini or json"),
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: l10n.T("only check the configuration, print nothing"),
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   l10n.T("print the configuration again whenever one of its files changes"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: l10n.T("log `LEVEL`: debug, info, warn or error"),
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	logger := logging.New(logging.ParseLevel(c.String("log-level")))
	slog.SetDefault(logger)

	format := c.String("format")
	if format != "ini" && format != "json" {
		return cli.Exit(l10n.T("unknown output format %q", format), 1)
	}

	// Loading changes the working directory. Relative paths would not
	// survive a reload.
	path, err := absPath(c.String("config"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	dropInDir, err := absPath(c.String("config-dir"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	src := &conf.Source{
		Path:      path,
		DropInDir: dropInDir,
		Quiet:     c.Bool("quiet"),
		Loader:    &conf.Loader{Logger: logger},
	}

	resolve := func() error {
		if c.Bool("check") {
			return check(c, src)
		}
		return printConfig(c.App.Writer, src, format)
	}
	if err := resolve(); err != nil {
		return loadError(logger, err)
	}
	if !c.Bool("watch") {
		return nil
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, unix.SIGTERM)
	defer stop()
	return src.Watch(ctx, func() {
		if err := resolve(); err != nil {
			logger.Error("failed to reload configuration", "error", err, "code", conf.Code(err))
		}
	})
}

func absPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	return filepath.Abs(path)
}

func check(c *cli.Context, src *conf.Source) error {
	n := uint32(0)
	err := src.Read(func(*kv.Map) error {
		n++
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.ErrWriter, l10n.TN("configuration OK: %d block", "configuration OK: %d blocks", n, n))
	return nil
}

func printConfig(w io.Writer, src *conf.Source, format string) error {
	var sections []*kv.Map
	err := src.Read(func(section *kv.Map) error {
		sections = append(sections, section)
		return nil
	})
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sections)
	default:
		return ini.Write(w, toINI(sections))
	}
}

func loadError(logger *slog.Logger, err error) error {
	logger.Error("failed to load configuration", "error", err, "code", conf.Code(err))
	return cli.Exit(l10n.T("cannot load configuration: %v", err), 1)
}

// toINI converts sections for output. The "name" key becomes the header.
func toINI(sections []*kv.Map) []ini.Section {
	out := make([]ini.Section, 0, len(sections))
	for _, section := range sections {
		s := ini.Section{Name: section.Value("name")}
		section.Range(func(key, value string) bool {
			if key != "name" {
				s.Properties = append(s.Properties, ini.Property{Key: key, Value: value})
			}
			return true
		})
		out = append(out, s)
	}
	return out
}
