// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// mcp-server exposes the certificate chain verifier as a Model Context
// Protocol server over stdio.
package main

import (
	"fmt"
	"os"

	mcpserver "github.com/signerkit/cert-chain-verifier/src/mcp-server"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = mcpserver.GetVersion()
	}
}

func main() {
	if err := mcpserver.Run(version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
