// Package main provides CLI flag definitions for moodle-migrate.
package main

import (
	urfavecli "github.com/urfave/cli/v3"
)

// globalFlags returns all flags of the application.
// Note: --version is provided automatically by urfave/cli via Command.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringFlag{
			Name:    "log-file",
			Aliases: []string{"l"},
			Usage:   "Run log file, written alongside the console (default: migration.log)",
		},
		&urfavecli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Log rule matches and skipped manifest records",
		},
		&urfavecli.BoolFlag{
			Name:  "prune-shards",
			Usage: "Delete copied files and empty shard directories from the backup store",
		},
		&urfavecli.BoolFlag{
			Name:  "skip-validate",
			Usage: "Do not require moodle_backup.xml and course/course.xml",
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "Override config values (repeatable): --config=mm.key=value",
		},
	}
}
