package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes
const (
	Success = iota
	SetupFailed
	CmdLineOptionError
	SyncFailed
)

// done reports the outcome of a run and returns the exit code for it.
func done(res syncResult, err error, log Logger) int {
	if err != nil {
		log.Warn(fmt.Sprintf("Sync failed: %v", err))
		if errors.Is(err, context.Canceled) {
			log.Warn("Interrupted.")
		}
		return SyncFailed
	}

	if res.Pending == 0 {
		log.Info("Nothing to upload.")
	} else {
		log.Info(fmt.Sprintf("Uploaded %d of %d local files (%d objects in bucket).", res.Uploaded, res.Local, res.Remote))
	}
	log.Info("All done!")
	return Success
}

func run() int {
	if err := validateCmdLineFlags(opts); err != nil {
		fmt.Printf("Invalid option: %v.\n\n", err)
		flag.Usage()
		return CmdLineOptionError
	}

	cfg, err := resolveConfig(opts, envSnapshot(opts.envFile))
	if err != nil {
		fmt.Printf("Required field missing: %v.\n\n", err)
		flag.Usage()
		return CmdLineOptionError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := newS3Client(ctx, cfg)
	if err != nil {
		logger.Warn(err.Error())
		return SetupFailed
	}

	res, err := runSync(ctx, opts.fileGroups(flag.Args()), cfg, backend{
		lister:   client,
		uploader: NewS3UploaderWithClient(client),
		log:      logger,
	})

	return done(res, err, logger)
}

func main() {
	os.Exit(run())
}
