package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/bkrabach/releasekit/commands"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("%v", r)
			os.Exit(1)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupts
		logrus.Warn("Release cancelled by user")
		cancel()
		os.Exit(1)
	}()

	if err := commands.RootCommand(ctx).Execute(); err != nil {
		logrus.Error(err.Error())
		os.Exit(1)
	}
}
