// Package main provides portscan, a command that loads the bundled demo
// plugins into an in-process host and prints the audio ports each exposes.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/opd-ai/clapext/audioports"
	"github.com/opd-ai/clapext/boundary"
	"github.com/opd-ai/clapext/host"
	"github.com/opd-ai/clapext/plugins/opussource"
	"github.com/opd-ai/clapext/plugins/stereogain"
)

// CLIConfig holds command-line settings.
type CLIConfig struct {
	configPath string
	logLevel   string
	plugin     string
	renameTo   string
	stereo     bool
	activate   bool
	help       bool
}

var entries = map[string]host.Entry{
	"stereo-gain": stereogain.Entry,
	"opus-source": opussource.Entry,
}

var order = []string{"stereo-gain", "opus-source"}

func parseCLIFlags(args []string) (*CLIConfig, error) {
	config := &CLIConfig{}
	fs := flag.NewFlagSet("portscan", flag.ContinueOnError)

	fs.StringVar(&config.configPath, "config", "", "Host options YAML file (default: built-in defaults)")
	fs.StringVar(&config.logLevel, "log-level", "", "Override the log level from the options file")
	fs.StringVar(&config.plugin, "plugin", "all", "Plugin to scan: all, stereo-gain or opus-source")
	fs.StringVar(&config.renameTo, "rename-sidechain", "", "Rename the stereo-gain sidechain while active and rescan")
	fs.BoolVar(&config.stereo, "stereo", false, "Switch the opus-source output to stereo while active and rescan")
	fs.BoolVar(&config.activate, "activate", false, "Activate each plugin before printing")
	fs.BoolVar(&config.help, "help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return config, nil
}

func loadOptions(config *CLIConfig) (*host.Options, error) {
	opts := host.NewOptions()
	if config.configPath != "" {
		loaded, err := host.LoadOptions(config.configPath)
		if err != nil {
			return nil, err
		}
		opts = loaded
	}
	if config.logLevel != "" {
		opts.LogLevel = config.logLevel
	}
	if err := opts.ApplyLogLevel(); err != nil {
		return nil, err
	}
	return opts, nil
}

func selectPlugins(name string) ([]string, error) {
	if name == "all" {
		return order, nil
	}
	if _, ok := entries[name]; !ok {
		return nil, fmt.Errorf("unknown plugin %q", name)
	}
	return []string{name}, nil
}

// scanPlugin loads one plugin, applies the requested live changes and
// prints its final port list.
func scanPlugin(out io.Writer, opts *host.Options, config *CLIConfig, name string) error {
	tracker, err := audioports.NewTracker(opts)
	if err != nil {
		return err
	}
	session, err := host.NewSession(opts, tracker, audioports.HostImplementation)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.Load(entries[name]); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	if err := tracker.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", name, err)
	}

	if config.activate {
		if err := session.Activate(); err != nil {
			return fmt.Errorf("activate %s: %w", name, err)
		}
	}

	if config.renameTo != "" {
		if g, err := stereogain.FromPlugin(session.Plugin()); err == nil {
			g.RenameSidechain(config.renameTo)
		}
	}
	if config.stereo {
		if src, err := opussource.FromPlugin(session.Plugin()); err == nil {
			src.SetStereo(true)
			if session.TakeRestartRequest() {
				fmt.Fprintf(out, "%s requested a restart; deactivating\n", name)
				session.Deactivate()
			}
		}
	}

	fmt.Fprintf(out, "%s (session %s, active: %t, scans: %d)\n", session.PluginID(), session.ID(), session.IsActive(), tracker.Scans())
	printPorts(out, tracker.Ports())
	if rejected := tracker.Rejected(); rejected != 0 {
		fmt.Fprintf(out, "rejected rescans: %s\n", rejected)
	}
	fmt.Fprintln(out)
	return nil
}

func printPorts(out io.Writer, list *audioports.PortList) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DIR\tINDEX\tID\tNAME\tCHANNELS\tTYPE\tFLAGS\tIN-PLACE")
	for _, isInput := range []bool{true, false} {
		dir := "out"
		if isInput {
			dir = "in"
		}
		for i, p := range list.Direction(isInput) {
			portType := "-"
			if !p.PortType.IsZero() {
				portType = p.PortType.String()
			}
			pair := "-"
			if p.HasInPlacePair {
				pair = p.InPlacePair.String()
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
				dir, i, p.ID, p.DisplayName(), p.ChannelCount, portType, p.Flags, pair)
		}
	}
	tw.Flush()
}

func run(args []string, out io.Writer) error {
	config, err := parseCLIFlags(args)
	if err != nil {
		return err
	}
	if config.help {
		fmt.Fprintln(out, "Usage: portscan [options]")
		return nil
	}

	opts, err := loadOptions(config)
	if err != nil {
		return err
	}
	names, err := selectPlugins(config.plugin)
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := scanPlugin(out, opts, config, name); err != nil {
			boundary.NewLogger("portscan", "run").
				WithField("plugin", name).
				WithError(err, "scan").
				Error("Port scan failed")
			return err
		}
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "portscan: %v\n", err)
		os.Exit(1)
	}
}
