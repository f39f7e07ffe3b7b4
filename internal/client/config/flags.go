package config

import (
	"flag"
	"os"
	"time"

	"github.com/mvolkov/tastebook/internal/flagx"
)

// parseFlags overlays selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the Tastebook API
//	-t int      request timeout in seconds
//	-p int      default page size
//	-d string   path of the local vault database
//
// Arguments are filtered through flagx.FilterArgs so flags owned by other
// components (like -c/-config) pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-p", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the Tastebook API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "default page size")
	fs.StringVar(&cfg.VaultPath, "d", cfg.VaultPath, "path of the local vault database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
