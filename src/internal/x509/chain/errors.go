// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import "errors"

// Verification failures. All are terminal for the call that raised them;
// callers match with [errors.Is] since the returned errors carry
// certificate detail via wrapping.
var (
	// ErrNoCertificates indicates that the supplied certificate set was empty.
	ErrNoCertificates = errors.New("x509chain: no certificates provided")

	// ErrNoPathFound indicates that issuer discovery dead-ended before
	// reaching a self-verifying root.
	ErrNoPathFound = errors.New("x509chain: no valid certificate path found")

	// ErrNoTrustedPath indicates that complete paths were built but none of
	// them touches the trusted certificate set.
	ErrNoTrustedPath = errors.New("x509chain: no trusted certificate path found")

	// ErrChainTooShort indicates that the chosen path has fewer than two
	// certificates. A bare self-signed leaf is never an acceptable chain.
	ErrChainTooShort = errors.New("x509chain: chain must contain at least two certificates")

	// ErrCertNotValid indicates that a certificate in the chosen path is
	// outside its validity window at the requested instant.
	ErrCertNotValid = errors.New("x509chain: certificate not valid or expired")

	// ErrNotCA indicates that a non-leaf certificate in the chosen path is
	// not authorized to act as a certificate authority.
	ErrNotCA = errors.New("x509chain: intermediate certificate is not a CA")

	// ErrNameChaining indicates broken issuer/subject linkage between
	// adjacent certificates in the chosen path.
	ErrNameChaining = errors.New("x509chain: incorrect certificate name chaining")
)
