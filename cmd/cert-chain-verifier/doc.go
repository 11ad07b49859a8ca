// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// cert-chain-verifier is a command-line tool for building and validating
// code-signing certificate chains against a local trust bundle.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/signerkit/cert-chain-verifier/cmd/cert-chain-verifier@latest
//
// # Usage
//
//	cert-chain-verifier CERT_FILE -t TRUST_BUNDLE [FLAGS]
//
// # Flags
//
//	-t, --trust-bundle      Trusted root certificates (PEM file or directory) [required]
//	    --at                Validity instant in RFC3339 format (default: now)
//	-o, --output            Destination file (default: stdout)
//	-f, --format            Output format: pem, table, tree, or json (default: pem)
//	-i, --intermediate-only Emit only intermediate certificates
//	-d, --der               Output bundle in DER format (pem format only)
//
// # Examples
//
// Verify a leaf bundle against a trust store directory:
//
//	cert-chain-verifier signing-chain.pem -t /etc/pki/trust/anchors
//
// Verify at a specific instant and write the verified chain to a file:
//
//	cert-chain-verifier signing-chain.pem -t roots.pem \
//	  --at 2025-06-01T00:00:00Z -o verified.pem
//
// Display the verified chain as an ASCII tree:
//
//	cert-chain-verifier signing-chain.pem -t roots.pem -f tree
//
// Produce a JSON summary with PEM-encoded certificates:
//
//	cert-chain-verifier signing-chain.pem -t roots.pem -f json > chain.json
package main
