package main

import (
	"os"

	"github.com/trezcool/samvidha/core"
	"github.com/trezcool/samvidha/core/dashboard"
	logsvc "github.com/trezcool/samvidha/services/logger"
	"github.com/trezcool/samvidha/services/portal"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewLogger(os.Stderr, "CLI", conf)
	defer logger.Flush()

	// start CLI
	cli := commandLine{
		out:     os.Stdout,
		outFd:   int(os.Stdout.Fd()),
		logger:  logger,
		dashSvc: dashboard.NewService(conf, portal.NewParser(conf)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		logger.Flush()
		os.Exit(1)
	}
}
