package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/fuel/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags. Only
// flags listed in doc.go are considered; the rest of args is ignored.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-i", "-w", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "local database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	debounce := fs.Int("w", int(cfg.SaveDebounce.Milliseconds()), "profile save debounce (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		case "w":
			cfg.SaveDebounce = time.Duration(*debounce) * time.Millisecond
		}
	})
}
