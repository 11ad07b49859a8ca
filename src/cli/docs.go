// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli implements the command-line interface for the certificate
// chain verifier. It wires [cobra] commands to the chain verification
// engine: reading a leaf bundle, loading trusted roots, building and
// validating a certification path, and rendering the result as PEM, DER,
// a table, an ASCII tree, or JSON.
//
// [cobra]: https://github.com/spf13/cobra
package cli
