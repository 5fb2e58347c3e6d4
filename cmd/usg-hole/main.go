package main

import (
	"fmt"
	"os"
	"strings"

	syslog "github.com/RackSec/srslog"
	usghole "github.com/josephmilla/usg-hole"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "usg-hole",
		Short: "DNS blackhole updater for dnsmasq gateways",
		Long: `DNS blackhole updater for dnsmasq gateways.

It downloads one or more hosts-style domain blacklists, merges and
deduplicates them, and writes dnsmasq configuration that resolves
every blacklisted domain to a null address for both IPv4 and IPv6.
The previous configuration generation is archived with a timestamped
backup and an @last pointer per address family before it is replaced,
then dnsmasq is reloaded.
`,
		Example:      `  usg-hole config.toml`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return update(args[0])
		},
	}
	root.AddCommand(
		&cobra.Command{
			Use:          "install <config>",
			Short:        "Copy the executable into the backup workspace",
			Args:         cobra.ExactArgs(1),
			SilenceUsage: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return install(args[0])
			},
		},
		&cobra.Command{
			Use:          "uninstall <config>",
			Short:        "Remove generated configuration files and the workspace",
			Args:         cobra.ExactArgs(1),
			SilenceUsage: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return uninstall(args[0])
			},
		},
	)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func update(configFile string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg.Log); err != nil {
		return err
	}
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("no blacklist sources configured in '%s'", configFile)
	}

	var loaders []usghole.Loader
	for _, src := range cfg.Sources {
		if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
			loaders = append(loaders, usghole.NewHTTPLoader(src, usghole.HTTPLoaderOptions{Timeout: cfg.FetchTimeout.Duration}))
		} else {
			loaders = append(loaders, usghole.NewFileLoader(src))
		}
	}

	var reloader usghole.Reloader
	if len(cfg.Resolver.ReloadCommand) > 0 {
		reloader = usghole.NewCommandReloader(cfg.Resolver.ReloadCommand[0], cfg.Resolver.ReloadCommand[1:]...)
	}

	p := usghole.Pipeline{
		Loaders: loaders,
		Transform: usghole.TransformOptions{
			TargetV4: cfg.Resolver.TargetV4,
			TargetV6: cfg.Resolver.TargetV6,
		},
		Generation: usghole.Generation{
			IPv4Path: cfg.Resolver.IPv4Conf,
			IPv6Path: cfg.Resolver.IPv6Conf,
		},
		Rotator:  usghole.NewRotator(cfg.Backup.Dir, cfg.Backup.Prefix, cfg.Backup.Keep),
		Reloader: reloader,
	}
	if err := p.Run(); err != nil {
		return err
	}
	usghole.Log.Info("blackhole update complete")
	return nil
}

func install(configFile string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg.Log); err != nil {
		return err
	}
	path, err := usghole.Install(cfg.Backup.Dir)
	if err != nil {
		return err
	}
	usghole.Log.WithField("path", path).Info("installed")
	return nil
}

func uninstall(configFile string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg.Log); err != nil {
		return err
	}
	g := usghole.Generation{IPv4Path: cfg.Resolver.IPv4Conf, IPv6Path: cfg.Resolver.IPv6Conf}
	if err := usghole.Uninstall(g, cfg.Backup.Dir); err != nil {
		return err
	}
	usghole.Log.Info("uninstalled")
	return nil
}

func setupLogging(cfg logging) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level '%s'", cfg.Level)
	}
	usghole.Log.SetLevel(level)
	if cfg.Syslog {
		// Cron output is lost on a gateway, send logs to syslog instead.
		network := ""
		if cfg.SyslogAddress != "" {
			network = "udp"
		}
		w, err := syslog.Dial(network, cfg.SyslogAddress, syslog.LOG_INFO|syslog.LOG_DAEMON, "usg-hole")
		if err != nil {
			return err
		}
		usghole.Log.SetOutput(w)
	}
	return nil
}
