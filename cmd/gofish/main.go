package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := buildApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func buildApp() *cli.App {
	chainFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "chains",
			Usage:   "TOML file with extra or replacement pointer chains",
			EnvVars: []string{"GOFISH_CHAINS"},
		},
		&cli.StringFlag{
			Name:    "game-version",
			Usage:   "game build to use from the chain table (default: the table's default)",
			EnvVars: []string{"GOFISH_GAME_VERSION"},
		},
		&cli.StringFlag{
			Name:    "process",
			Usage:   "target executable name (default: the chain's module)",
			EnvVars: []string{"GOFISH_PROCESS"},
		},
	}

	return &cli.App{
		Name:  "gofish",
		Usage: "reel in fish by watching the rod state in game memory",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "cast, wait for a bite and reel until stopped",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:    "casts",
						Usage:   "stop after this many casts, 0 for no limit",
						EnvVars: []string{"GOFISH_CASTS"},
					},
					&cli.UintFlag{
						Name:    "threshold",
						Usage:   "extra falling samples after a peak before reeling",
						EnvVars: []string{"GOFISH_THRESHOLD"},
					},
					&cli.DurationFlag{
						Name:  "settle",
						Usage: "wait before the first cast",
						Value: 5 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "wait",
						Usage: "wait for the game to start instead of failing",
					},
				}, chainFlags...),
				Action: runAction,
			},
			{
				Name:   "probe",
				Usage:  "resolve the pointer chain and dump the rod state",
				Flags:  chainFlags,
				Action: probeAction,
			},
			{
				Name:   "chains",
				Usage:  "list known game versions",
				Flags:  chainFlags[:1],
				Action: chainsAction,
			},
		},
	}
}
