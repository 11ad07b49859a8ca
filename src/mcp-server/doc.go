// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver implements a [Model Context Protocol] server exposing
// certificate chain verification tools over stdio.
//
// The server provides four tools:
//   - verify_cert_chain: builds and validates a certification path for a
//     supplied certificate bundle against a trust bundle
//   - batch_verify_cert_chain: verifies multiple bundles in one call
//   - inspect_certificate: reports subject, issuer, validity, and key details
//     for every certificate in a bundle
//   - check_cert_expiry: warns about certificates approaching expiry
//
// Configuration is loaded from the file named by the
// MCP_VERIFIER_CONFIG_FILE environment variable (JSON or YAML), with
// sensible defaults applied for missing values.
//
// [Model Context Protocol]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
