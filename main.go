package main

import (
	"fmt"
	"os"

	"github.com/MixinNetwork/sigbench/config"
	"github.com/MixinNetwork/sigbench/crypto"
	"github.com/MixinNetwork/sigbench/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "sigbench"
	app.Usage = "Measure Ed25519 signing and batch verification throughput."
	app.Version = config.BuildVersion
	app.Flags = benchFlags()
	app.Action = benchCmd
	app.EnableBashCompletion = true
	app.Commands = []*cli.Command{
		{
			Name:    "bench",
			Aliases: []string{"b"},
			Usage:   "Run the benchmark matrix and print the report lines",
			Action:  benchCmd,
			Flags:   benchFlags(),
		},
		{
			Name:   "sign",
			Usage:  "Sign a message with the key derived from a seed",
			Action: signCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "seed",
					Usage: "the 32 bytes private key seed `HEX`",
				},
				&cli.StringFlag{
					Name:    "message",
					Aliases: []string{"m"},
					Usage:   "the message `HEX`",
				},
				&cli.StringFlag{
					Name:  "provider",
					Value: config.DefaultProvider,
					Usage: "the signature provider",
				},
				&cli.BoolFlag{
					Name:  "json",
					Usage: "print the signed message as JSON accepted by verify --json",
				},
			},
		},
		{
			Name:   "verify",
			Usage:  "Verify a signature of a message",
			Action: verifyCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "key",
					Aliases: []string{"k"},
					Usage:   "the public key `HEX`",
				},
				&cli.StringFlag{
					Name:    "message",
					Aliases: []string{"m"},
					Usage:   "the message `HEX`",
				},
				&cli.StringFlag{
					Name:    "signature",
					Aliases: []string{"s"},
					Usage:   "the signature `HEX`",
				},
				&cli.StringFlag{
					Name:  "provider",
					Value: config.DefaultProvider,
					Usage: "the signature provider",
				},
				&cli.StringFlag{
					Name:  "json",
					Usage: "the signed message `JSON` instead of the key, message and signature flags",
				},
			},
		},
		{
			Name:   "keygen",
			Usage:  "Generate a random key pair",
			Action: keygenCmd,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "json",
					Usage: "print the key pair as JSON",
				},
			},
		},
		{
			Name:   "report",
			Usage:  "Print the report lines of a sample dump",
			Action: reportCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "dump",
					Aliases: []string{"d"},
					Usage:   "the sample dump file",
				},
			},
		},
		{
			Name:   "providers",
			Usage:  "List the signature providers",
			Action: providersCmd,
		},
	}
	return app
}

func benchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "the TOML config file read over the defaults",
		},
		&cli.StringFlag{
			Name:    "provider",
			Aliases: []string{"p"},
			Value:   config.DefaultProvider,
			Usage:   fmt.Sprintf("the signature provider, one of %v", crypto.ProviderNames()),
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Usage:   "the worker pool threads, 0 for the CPU count",
		},
		&cli.IntFlag{
			Name:  "queue",
			Usage: "the worker pool queue limit, 0 for unbounded",
		},
		&cli.StringSliceFlag{
			Name:    "operation",
			Aliases: []string{"o"},
			Usage:   fmt.Sprintf("the operations to run, any of %v", config.Operations()),
		},
		&cli.IntSliceFlag{
			Name:    "batch",
			Aliases: []string{"b"},
			Usage:   "the batch sizes to run, powers of two up to 4096",
		},
		&cli.StringSliceFlag{
			Name:  "mode",
			Usage: fmt.Sprintf("the execution modes, any of %v", config.Modes()),
		},
		&cli.StringFlag{
			Name:  "signals",
			Value: config.SignalsGroup,
			Usage: "the pooled completion signals, group or task",
		},
		&cli.StringFlag{
			Name:    "dump",
			Aliases: []string{"d"},
			Usage:   "write the samples to this file after a successful run",
		},
		&cli.IntFlag{
			Name:    "log",
			Aliases: []string{"l"},
			Value:   logger.INFO,
			Usage:   "the log level",
		},
		&cli.StringFlag{
			Name:  "filter",
			Usage: "the RE2 regex pattern to filter log",
		},
		&cli.IntFlag{
			Name:  "limiter",
			Usage: "the maximum repeats of an identical log line, 0 for no limit",
		},
	}
}
