// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"bytes"
	"crypto/x509"
	"fmt"
)

// signedBy reports whether child's signature verifies under issuer's public
// key. This is a pure cryptographic check: CA authorization and validity are
// policy concerns enforced later by the path validator, and any verification
// error only disqualifies the candidate.
func signedBy(child, issuer *x509.Certificate) bool {
	return issuer.CheckSignature(child.SignatureAlgorithm, child.RawTBSCertificate, child.Signature) == nil
}

// selfVerifying reports whether cert is its own issuer: subject equals issuer
// structurally and the signature verifies against the certificate's own key.
// Such certificates terminate issuer discovery.
func selfVerifying(cert *x509.Certificate) bool {
	return bytes.Equal(cert.RawSubject, cert.RawIssuer) && signedBy(cert, cert)
}

// buildPaths enumerates every structurally distinct chain from leaf to a
// self-verifying root over the pool.
//
// Discovery runs breadth-first over partial paths instead of recursing, which
// bounds stack depth and lets each partial path carry its own cycle guard: a
// candidate already on the path under extension is skipped. Exhaustive
// enumeration matters for correctness because a certificate may have several
// plausible issuers (shared subject name or key identifier) and a greedy pick
// could chase a dead end while a valid alternative exists.
//
// A non-terminal certificate with no surviving issuer candidate is a genuine
// dead end; discovery starts at the leaf, so the whole call fails fast with
// ErrNoPathFound.
func (p *Pool) buildPaths(leaf *x509.Certificate) ([]Path, error) {
	if selfVerifying(leaf) {
		return []Path{{leaf}}, nil
	}

	var complete []Path
	queue := []Path{{leaf}}
	for len(queue) > 0 {
		partial := queue[0]
		queue = queue[1:]
		tip := partial[len(partial)-1]

		var issuers []*x509.Certificate
		for _, candidate := range p.issuerCandidates(tip) {
			if partial.contains(candidate) {
				continue
			}
			if !signedBy(tip, candidate) {
				continue
			}
			issuers = append(issuers, candidate)
		}
		if len(issuers) == 0 {
			return nil, fmt.Errorf("%w: no issuer for %q", ErrNoPathFound, tip.Subject.String())
		}

		for _, issuer := range issuers {
			next := partial.extend(issuer)
			if selfVerifying(issuer) {
				complete = append(complete, next)
				continue
			}
			queue = append(queue, next)
		}
	}

	return complete, nil
}
