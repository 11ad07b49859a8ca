// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	"github.com/signerkit/cert-chain-verifier/src/internal/helper/gc"
	"github.com/signerkit/cert-chain-verifier/src/internal/helper/posix"
	x509certs "github.com/signerkit/cert-chain-verifier/src/internal/x509/certs"
	x509chain "github.com/signerkit/cert-chain-verifier/src/internal/x509/chain"
	"github.com/signerkit/cert-chain-verifier/src/internal/x509/truststore"
	"github.com/signerkit/cert-chain-verifier/src/logger"
	"github.com/spf13/cobra"
)

var (
	trustBundle      string
	validAt          string
	outputFile       string
	outputFormat     string
	intermediateOnly bool
	derFormat        bool
)

// OperationPerformed indicates whether a verification was attempted during
// Execute. The cmd entrypoint uses it to decide whether to log completion.
var OperationPerformed bool

// OperationPerformedSuccessfully indicates whether the verification attempt
// produced a trusted, valid certification path.
var OperationPerformedSuccessfully bool

// Execute runs the root command with the given context, version, and logger.
// It returns any error from command execution; cobra already prints usage
// errors, so callers should not re-log them.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	execName := posix.GetExecutableName()

	rootCmd := &cobra.Command{
		Use:     execName + " [CERT_FILE]",
		Short:   "Code-signing certificate chain verifier",
		Long: "Builds and validates a certification path from the leaf certificate in CERT_FILE\n" +
			"to a trusted root, using only the certificates supplied in the file and the\n" +
			"trust bundle. No network access is performed.",
		Version: version,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execCli(cmd.Context(), args[0], log)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&trustBundle, "trust-bundle", "t", "", "trusted root certificates (PEM file or directory, required)")
	rootCmd.Flags().StringVar(&validAt, "at", "", "validity instant in RFC3339 format (default: now)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output to OUTPUT_FILE (default: stdout)")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "pem", "output format: pem, table, tree, or json")
	rootCmd.Flags().BoolVarP(&intermediateOnly, "intermediate-only", "i", false, "output intermediate certificates only")
	rootCmd.Flags().BoolVarP(&derFormat, "der", "d", false, "output DER format (pem format only)")

	if err := rootCmd.MarkFlagRequired("trust-bundle"); err != nil {
		return fmt.Errorf("error marking flag required: %w", err)
	}

	return rootCmd.ExecuteContext(ctx)
}

// execCli reads and decodes the input bundle, loads the trust store, verifies
// the chain, and writes the rendered path to the output destination.
func execCli(ctx context.Context, inputFile string, log logger.Logger) error {
	OperationPerformed = true

	supplied, err := readBundle(inputFile)
	if err != nil {
		return err
	}

	store, err := truststore.Load(trustBundle)
	if err != nil {
		return fmt.Errorf("error loading trust bundle: %w", err)
	}

	var opts []x509chain.Option
	if validAt != "" {
		at, err := time.Parse(time.RFC3339, validAt)
		if err != nil {
			return fmt.Errorf("error parsing --at instant: %w", err)
		}
		opts = append(opts, x509chain.WithValidityTime(at))
	}

	// Bail out before the crypto work if the caller is already gone.
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path, err := x509chain.Verify(store.Certificates(), supplied, opts...)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	outputData, err := renderPath(path)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, outputData, 0644); err != nil {
			return fmt.Errorf("error writing to output file: %w", err)
		}
	} else {
		log.Printf("%s", outputData)
	}

	OperationPerformedSuccessfully = true
	return nil
}

// readBundle reads a multi-certificate bundle from disk and reorders it for
// verification. Bundle files conventionally carry the leaf first; the
// verification pool expects it last, so the first certificate is rotated to
// the end.
func readBundle(inputFile string) ([]*x509.Certificate, error) {
	file, err := os.Open(inputFile)
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}
	defer file.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(file); err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}

	certs, err := x509certs.New().DecodeBundle(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("error decoding certificates: %w", err)
	}

	if len(certs) > 1 {
		certs = append(certs[1:], certs[0])
	}
	return certs, nil
}

// renderPath serializes the verified path according to the output flags.
func renderPath(path x509chain.Path) ([]byte, error) {
	switch outputFormat {
	case "table":
		return []byte(path.RenderTable()), nil
	case "tree":
		return []byte(path.RenderASCIITree()), nil
	case "json":
		data, err := path.MarshalVisualizationJSON()
		if err != nil {
			return nil, fmt.Errorf("error encoding JSON output: %w", err)
		}
		return data, nil
	case "pem":
		certsToOutput := []*x509.Certificate(path)
		if intermediateOnly {
			certsToOutput = path.Intermediates()
		}
		codec := x509certs.New()
		if derFormat {
			return codec.EncodeMultipleDER(certsToOutput), nil
		}
		return codec.EncodeMultiplePEM(certsToOutput), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected pem, table, tree, or json)", outputFormat)
	}
}
