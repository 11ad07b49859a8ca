// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	x509certs "github.com/signerkit/cert-chain-verifier/src/internal/x509/certs"
	x509chain "github.com/signerkit/cert-chain-verifier/src/internal/x509/chain"
)

// handleVerifyCertChain builds and validates a certification path for a
// supplied certificate bundle against a trust bundle.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: MCP tool call request containing the certificate bundle,
//     trust bundle override, validity instant, and output format
//   - config: Server configuration providing the default trust bundle
//
// Returns:
//   - The tool execution result with the verified path or the failure reason
//   - An error only for protocol-level failures; verification failures are
//     reported as tool errors
//
// The handler supports file path or base64 input and PEM, table, tree, or
// JSON output. Verification is strictly offline: only the supplied bundle and the
// trust bundle participate.
func handleVerifyCertChain(ctx context.Context, request mcp.CallToolRequest, config *Config) (*mcp.CallToolResult, error) {
	certInput, err := request.RequireString("certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
	}

	format := request.GetString("format", "pem")

	supplied, err := decodeBundleInput(certInput)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	store, err := loadTrustBundle(request.GetString("trust_bundle", ""), config)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts, err := validityOptions(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	path, err := x509chain.Verify(store.Certificates(), supplied, opts...)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate chain verification failed: %v", err)), nil
	}

	var output string
	switch format {
	case "tree":
		output = path.RenderASCIITree()
	case "table":
		output = path.RenderTable()
	case "json":
		data, err := path.MarshalVisualizationJSON()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode JSON output: %v", err)), nil
		}
		output = string(data)
	default: // pem
		output = string(x509certs.New().EncodeMultiplePEM(path))
	}

	result := "Certificate chain verification successful!\n\n"
	result += "Verified Path:\n"
	for i, cert := range path {
		result += fmt.Sprintf("%d: %s\n", i+1, cert.Subject.CommonName)
	}
	result += fmt.Sprintf("\nTotal: %d certificate(s)\n\n", len(path))
	result += output

	return mcp.NewToolResultText(result), nil
}

// handleBatchVerifyCertChain verifies certification paths for multiple
// certificate bundles from comma-separated inputs. Individual bundle
// failures are reported per bundle rather than failing the whole batch.
func handleBatchVerifyCertChain(ctx context.Context, request mcp.CallToolRequest, config *Config) (*mcp.CallToolResult, error) {
	certInput, err := request.RequireString("certificates")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificates parameter required: %v", err)), nil
	}

	inputs := splitBatchInput(certInput)
	if len(inputs) == 0 {
		return mcp.NewToolResultError("no certificates provided"), nil
	}

	store, err := loadTrustBundle(request.GetString("trust_bundle", ""), config)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts, err := validityOptions(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	passed := 0
	result := fmt.Sprintf("Batch verification of %d bundle(s):\n\n", len(inputs))

	for i, input := range inputs {
		result += fmt.Sprintf("Bundle %d:\n", i+1)

		supplied, err := decodeBundleInput(input)
		if err != nil {
			result += fmt.Sprintf("  FAILED: %v\n", err)
			continue
		}

		path, err := x509chain.Verify(store.Certificates(), supplied, opts...)
		if err != nil {
			result += fmt.Sprintf("  FAILED: %v\n", err)
			continue
		}

		passed++
		result += fmt.Sprintf("  PASSED: %s (path length %d, anchor %s)\n",
			path.Leaf().Subject.CommonName, len(path), path.Anchor().Subject.CommonName)
	}

	result += fmt.Sprintf("\nSummary: %d passed, %d failed\n", passed, len(inputs)-passed)

	return mcp.NewToolResultText(result), nil
}

// certDetail is the JSON shape reported by inspect_certificate.
type certDetail struct {
	Subject      string `json:"subject"`
	Issuer       string `json:"issuer"`
	SerialNumber string `json:"serial_number"`
	NotBefore    string `json:"not_before"`
	NotAfter     string `json:"not_after"`
	IsCA         bool   `json:"is_ca"`
	SelfSigned   bool   `json:"self_signed"`
	PublicKey    string `json:"public_key"`
	SignatureAlg string `json:"signature_algorithm"`
}

// handleInspectCertificate reports subject, issuer, validity window, and key
// details for every certificate in the supplied bundle.
func handleInspectCertificate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	certInput, err := request.RequireString("certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
	}

	format := request.GetString("format", "text")

	data, err := readCertInput(certInput)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read certificate: %v", err)), nil
	}

	certs, err := x509certs.New().DecodeBundle(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to decode certificate: %v", err)), nil
	}

	details := make([]certDetail, 0, len(certs))
	for _, cert := range certs {
		details = append(details, certDetail{
			Subject:      cert.Subject.String(),
			Issuer:       cert.Issuer.String(),
			SerialNumber: cert.SerialNumber.String(),
			NotBefore:    cert.NotBefore.Format(time.RFC3339),
			NotAfter:     cert.NotAfter.Format(time.RFC3339),
			IsCA:         cert.IsCA,
			SelfSigned:   string(cert.RawSubject) == string(cert.RawIssuer),
			PublicKey:    describePublicKey(cert.PublicKey),
			SignatureAlg: cert.SignatureAlgorithm.String(),
		})
	}

	if format == "json" {
		output, err := json.MarshalIndent(details, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode JSON output: %v", err)), nil
		}
		return mcp.NewToolResultText(string(output)), nil
	}

	result := fmt.Sprintf("Inspected %d certificate(s):\n\n", len(details))
	for i, d := range details {
		result += fmt.Sprintf("Certificate %d:\n", i+1)
		result += fmt.Sprintf("  Subject:    %s\n", d.Subject)
		result += fmt.Sprintf("  Issuer:     %s\n", d.Issuer)
		result += fmt.Sprintf("  Serial:     %s\n", d.SerialNumber)
		result += fmt.Sprintf("  Valid:      %s to %s\n", d.NotBefore, d.NotAfter)
		result += fmt.Sprintf("  CA:         %t\n", d.IsCA)
		result += fmt.Sprintf("  Self-signed: %t\n", d.SelfSigned)
		result += fmt.Sprintf("  Key:        %s\n", d.PublicKey)
		result += fmt.Sprintf("  Signature:  %s\n\n", d.SignatureAlg)
	}

	return mcp.NewToolResultText(result), nil
}

// handleCheckCertExpiry checks certificate expiry dates and warns about
// certificates expiring within the warning window. The warning threshold
// comes from the warn_days parameter, falling back to the configured default.
func handleCheckCertExpiry(ctx context.Context, request mcp.CallToolRequest, config *Config) (*mcp.CallToolResult, error) {
	certInput, err := request.RequireString("certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
	}

	warnDays := request.GetInt("warn_days", config.Defaults.WarnDays)

	data, err := readCertInput(certInput)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read certificate: %v", err)), nil
	}

	certs, err := x509certs.New().DecodeBundle(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to decode certificate: %v", err)), nil
	}

	now := time.Now()
	result := fmt.Sprintf("Expiry check for %d certificate(s) (warning threshold: %d days):\n\n", len(certs), warnDays)

	for i, cert := range certs {
		daysLeft := int(cert.NotAfter.Sub(now).Hours() / 24)

		var status string
		switch {
		case now.After(cert.NotAfter):
			status = "EXPIRED"
		case now.Before(cert.NotBefore):
			status = "NOT YET VALID"
		case daysLeft <= warnDays:
			status = fmt.Sprintf("WARNING: expires in %d day(s)", daysLeft)
		default:
			status = fmt.Sprintf("OK: %d day(s) remaining", daysLeft)
		}

		result += fmt.Sprintf("%d: %s\n", i+1, cert.Subject.CommonName)
		result += fmt.Sprintf("   Expires: %s\n", cert.NotAfter.Format(time.RFC3339))
		result += fmt.Sprintf("   Status:  %s\n\n", status)
	}

	return mcp.NewToolResultText(result), nil
}

// validityOptions parses the optional "at" argument into verification
// options.
func validityOptions(request mcp.CallToolRequest) ([]x509chain.Option, error) {
	atArg := request.GetString("at", "")
	if atArg == "" {
		return nil, nil
	}

	at, err := time.Parse(time.RFC3339, atArg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse 'at' instant: %v", err)
	}
	return []x509chain.Option{x509chain.WithValidityTime(at)}, nil
}
