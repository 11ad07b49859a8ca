// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import "crypto/x509"

// Path is an ordered certificate sequence starting at the leaf (index 0) and
// ending at a trusted anchor. Paths are ephemeral: constructed, filtered and
// discarded within a single verification call.
type Path []*x509.Certificate

// Leaf returns the first certificate of the path, or nil for an empty path.
func (p Path) Leaf() *x509.Certificate {
	if len(p) == 0 {
		return nil
	}
	return p[0]
}

// Anchor returns the last certificate of the path, or nil for an empty path.
func (p Path) Anchor() *x509.Certificate {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// Intermediates returns the certificates between leaf and anchor, or nil when
// the path has two or fewer members.
func (p Path) Intermediates() []*x509.Certificate {
	if len(p) <= 2 {
		return nil
	}
	return p[1 : len(p)-1]
}

// contains reports whether cert is already a member of the path. Used as the
// cycle guard during issuer discovery.
func (p Path) contains(cert *x509.Certificate) bool {
	fp := FingerprintOf(cert)
	for _, c := range p {
		if FingerprintOf(c) == fp {
			return true
		}
	}
	return false
}

// extend returns a copy of the path with issuer appended. The copy keeps
// queued partial paths independent of each other during traversal.
func (p Path) extend(issuer *x509.Certificate) Path {
	ext := make(Path, len(p), len(p)+1)
	copy(ext, p)
	return append(ext, issuer)
}

// role describes the position of the certificate at index i for rendering.
func (p Path) role(i int) string {
	switch {
	case len(p) == 1:
		return "Self-Signed Certificate"
	case i == 0:
		return "Leaf Certificate"
	case i == len(p)-1:
		return "Trusted Root CA"
	default:
		return "Intermediate CA"
	}
}
