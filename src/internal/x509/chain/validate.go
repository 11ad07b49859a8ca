// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"bytes"
	"crypto/x509"
	"fmt"
	"time"
)

// validAt reports whether the instant falls inside the certificate's
// validity window, inclusive at both ends.
func validAt(cert *x509.Certificate, at time.Time) bool {
	return !at.Before(cert.NotBefore) && !at.After(cert.NotAfter)
}

// validatePath enforces PKI policy on an assembled candidate path. Rules are
// ordered and the first violation aborts; there is no partial acceptance.
func validatePath(path Path, at time.Time) error {
	if len(path) < 2 {
		return fmt.Errorf("%w: got %d", ErrChainTooShort, len(path))
	}

	for _, cert := range path {
		if !validAt(cert, at) {
			return fmt.Errorf("%w: %q (valid %s to %s, checked at %s)",
				ErrCertNotValid, cert.Subject.String(),
				cert.NotBefore.Format(time.RFC3339), cert.NotAfter.Format(time.RFC3339),
				at.Format(time.RFC3339))
		}
	}

	for _, cert := range path[1:] {
		if !cert.IsCA {
			return fmt.Errorf("%w: %q", ErrNotCA, cert.Subject.String())
		}
	}

	// Walk from the anchor toward the leaf; every adjacent pair must link
	// issuer to subject.
	for i := len(path) - 1; i > 0; i-- {
		if !bytes.Equal(path[i-1].RawIssuer, path[i].RawSubject) {
			return fmt.Errorf("%w: %q is not issued by %q",
				ErrNameChaining, path[i-1].Subject.String(), path[i].Subject.String())
		}
	}

	return nil
}
