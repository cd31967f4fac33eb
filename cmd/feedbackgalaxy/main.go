package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hnrobert/feedbackgalaxy/internal/cli"
	"github.com/hnrobert/feedbackgalaxy/internal/config"
	"github.com/hnrobert/feedbackgalaxy/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, args, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}

	cli.ConfigureLogging(cfg, os.Stderr)
	defer logger.Close()

	app, err := cli.New(cfg, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		logger.Error("%v", err)
		return 1
	}
	return app.Run(args)
}
