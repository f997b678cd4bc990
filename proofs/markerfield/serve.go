package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/borkshop/markerfield/internal/vizserver"
)

func serveAction(opts *options, tps int, addr string) error {
	driver, err := vizserver.NewDriver(opts.cfg, opts.seed, tps, opts.logger)
	if err != nil {
		return err
	}
	if opts.profile {
		driver.Perf().Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	srv := vizserver.NewServer(driver, opts.logger, opts.logOut)
	err = srv.ListenAndServe(ctx, addr)
	stop()
	if derr := <-done; err == nil {
		err = derr
	}
	p := driver.Perf()
	opts.logger.Printf("served %d ticks, mean %v", p.Round(), p.Mean())
	return err
}
