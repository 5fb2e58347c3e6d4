package main

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

type config struct {
	Title string

	// Blacklist sources, in fetch order. Entries starting with http:// or
	// https:// are downloaded, everything else is read as a local file.
	Sources []string `envconfig:"SOURCES"`

	// Per-source fetch timeout.
	FetchTimeout duration `toml:"fetch-timeout"`

	Resolver resolver
	Backup   backup
	Log      logging
}

type resolver struct {
	IPv4Conf      string   `toml:"ipv4-conf" envconfig:"IPV4_CONF"`
	IPv6Conf      string   `toml:"ipv6-conf" envconfig:"IPV6_CONF"`
	TargetV4      string   `toml:"target-v4"`
	TargetV6      string   `toml:"target-v6"`
	ReloadCommand []string `toml:"reload-command"`
}

type backup struct {
	Dir    string `envconfig:"BACKUP_DIR"`
	Prefix string
	Keep   int
}

type logging struct {
	Level         string `envconfig:"LOG_LEVEL"`
	Syslog        bool
	SyslogAddress string `toml:"syslog-address"`
}

// duration makes time.Duration decodable from TOML strings like "30s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// loadConfig reads a config file, applies defaults suitable for an EdgeOS
// gateway, and lets USGHOLE_* environment variables override individual
// values.
func loadConfig(name string) (config, error) {
	c := config{
		Resolver: resolver{
			IPv4Conf:      "/etc/dnsmasq.d/dnsmasq.blackhole.ipv4.conf",
			IPv6Conf:      "/etc/dnsmasq.d/dnsmasq.blackhole.ipv6.conf",
			ReloadCommand: []string{"/etc/init.d/dnsmasq", "force-reload"},
		},
		Backup: backup{
			Dir:    "/config/user-data/usg-hole",
			Prefix: "dnsmasq.blackhole",
			Keep:   10,
		},
		Log: logging{
			Level: "info",
		},
	}
	f, err := os.Open(name)
	if err != nil {
		return c, err
	}
	defer f.Close()
	if _, err := toml.DecodeReader(f, &c); err != nil {
		return c, err
	}
	err = envconfig.Process("usghole", &c)
	return c, err
}
