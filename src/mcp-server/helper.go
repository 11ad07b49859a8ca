// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	x509certs "github.com/signerkit/cert-chain-verifier/src/internal/x509/certs"
	"github.com/signerkit/cert-chain-verifier/src/internal/x509/truststore"
)

// readCertInput resolves a tool's certificate argument to raw bytes. The
// argument may be a file path or base64-encoded certificate data; file paths
// are tried first.
func readCertInput(certInput string) ([]byte, error) {
	if fileData, err := os.ReadFile(certInput); err == nil {
		return fileData, nil
	}
	if decoded, err := base64.StdEncoding.DecodeString(certInput); err == nil {
		return decoded, nil
	}
	return nil, fmt.Errorf("not a valid file path or base64 data")
}

// decodeBundleInput reads and decodes a certificate bundle argument,
// reordering it for verification. Bundles conventionally carry the leaf
// first; the verification pool expects it last.
func decodeBundleInput(certInput string) ([]*x509.Certificate, error) {
	data, err := readCertInput(certInput)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate: %w", err)
	}

	certs, err := x509certs.New().DecodeBundle(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode certificate: %w", err)
	}

	if len(certs) > 1 {
		certs = append(certs[1:], certs[0])
	}
	return certs, nil
}

// loadTrustBundle loads the trust store from the request override or the
// configured default.
func loadTrustBundle(override string, config *Config) (*truststore.Store, error) {
	path := override
	if path == "" {
		path = config.Defaults.TrustBundle
	}
	if path == "" {
		return nil, fmt.Errorf("no trust bundle: provide trust_bundle or configure defaults.trustBundle")
	}

	store, err := truststore.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load trust bundle: %w", err)
	}
	return store, nil
}

// describePublicKey returns a short human-readable description of a
// certificate public key, e.g. "RSA 2048-bit" or "ECDSA P-256".
func describePublicKey(pub any) string {
	switch key := pub.(type) {
	case *rsa.PublicKey:
		return fmt.Sprintf("RSA %d-bit", key.N.BitLen())
	case *ecdsa.PublicKey:
		return fmt.Sprintf("ECDSA %s", key.Curve.Params().Name)
	case ed25519.PublicKey:
		return "Ed25519"
	default:
		return "Unknown"
	}
}

// splitBatchInput parses a comma-separated certificate list, trimming
// whitespace and dropping empty entries.
func splitBatchInput(input string) []string {
	parts := strings.Split(input, ",")
	inputs := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			inputs = append(inputs, trimmed)
		}
	}
	return inputs
}
