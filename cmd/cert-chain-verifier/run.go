// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/signerkit/cert-chain-verifier/src/cli"
	"github.com/signerkit/cert-chain-verifier/src/logger"
	versionpkg "github.com/signerkit/cert-chain-verifier/src/version"
)

var version string // set by ldflags or defaults to the imported version

func init() {
	if version == "" {
		version = versionpkg.Version
	}
}

func main() {
	log := logger.NewCLILogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Buffered so the goroutine never blocks when nobody is listening.
	done := make(chan error, 1)

	go func() {
		err := cli.Execute(ctx, version, log)
		select {
		case done <- err:
		case <-ctx.Done():
			log.Println("Operation cancelled, cleaning up...")
		}
	}()

	exitCode := 0

	select {
	case <-sigs:
		log.Println("\nReceived termination signal. Exiting...")
		cancel()
	case err := <-done:
		// Cobra already prints the error itself; only track the exit code.
		if err != nil {
			exitCode = 1
		} else if cli.OperationPerformed {
			log.Println("Certificate chain verification completed successfully.")
		}
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
