package main

import (
	"log"
	"os"

	"github.com/trezcool/darasa/apps/shared"
	"github.com/trezcool/darasa/core"
	logsvc "github.com/trezcool/darasa/services/logger"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	logger.Enable(!conf.Debug)

	translator := shared.NewTranslator()
	cli := commandLine{
		conf:       conf,
		logger:     logger,
		validate:   shared.NewValidator(translator),
		translator: translator,
		out:        os.Stdout,
	}

	err := cli.run(os.Args)
	if cErr := cli.close(); cErr != nil {
		logger.Error("closing store", cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Error("error: "+err.Error(), err)
		}
		os.Exit(1)
	}
}
