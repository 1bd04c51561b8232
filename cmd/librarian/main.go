package main

import (
	"bufio"
	"flag"
	"os"

	"github.com/kjk/flatlib/config"
	"github.com/kjk/flatlib/library"
	"github.com/kjk/flatlib/log"
)

func main() {
	var (
		flgConfig  string
		flgDataDir string
		flgVerbose bool
	)
	flag.StringVar(&flgConfig, "config", "", "path to config file (.yaml, .toml, .json)")
	flag.StringVar(&flgDataDir, "data", "", "directory with data files, overrides config")
	flag.BoolVar(&flgVerbose, "v", false, "verbose logging")
	flag.Parse()

	cfg, err := config.Load(flgConfig)
	if log.IfErrf(err, "config.Load('%s') failed with '%s'", flgConfig, err) {
		os.Exit(1)
	}
	if flgDataDir != "" {
		cfg.DataDir = flgDataDir
	}
	log.Verbose = cfg.Verbose || flgVerbose
	log.Init(&log.Config{Dir: cfg.LogDir})
	defer log.Close()

	log.Verbosef("books: %s, members: %s, loans: %s\n", cfg.BookPath(), cfg.MemberPath(), cfg.LoanPath())
	a := &app{
		lib: library.Open(cfg),
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}
	a.mainMenu()
}
