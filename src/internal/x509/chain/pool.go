// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/sha256"
	"crypto/x509"
)

// Fingerprint identifies a certificate by the SHA-256 digest of its raw DER
// encoding. Two certificates with equal fingerprints are structurally equal.
type Fingerprint [sha256.Size]byte

// FingerprintOf computes the structural fingerprint of a certificate.
func FingerprintOf(cert *x509.Certificate) Fingerprint {
	return sha256.Sum256(cert.Raw)
}

// Pool is the deduplicated union of trusted and supplied certificates, used
// as the universe for issuer discovery. Certificates keep first-seen order;
// by convention the last element of the pool is the assumed leaf.
//
// A Pool is built once per verification call and never mutated afterwards,
// so it is safe for concurrent reads.
type Pool struct {
	certs   []*x509.Certificate
	seen    map[Fingerprint]struct{}
	trusted map[Fingerprint]struct{}

	// Issuer lookup indexes, both keyed on raw DER bytes so that matching is
	// structural rather than string-rendered.
	bySubject map[string][]*x509.Certificate
	byKeyID   map[string][]*x509.Certificate
}

// NewPool normalizes trusted followed by supplied certificates into a fresh
// pool, dropping structural duplicates while preserving first-seen order.
// Certificates appearing in the trusted set are marked trusted even when the
// same certificate also appears in the supplied set.
func NewPool(trusted, supplied []*x509.Certificate) *Pool {
	p := &Pool{
		seen:      make(map[Fingerprint]struct{}),
		trusted:   make(map[Fingerprint]struct{}),
		bySubject: make(map[string][]*x509.Certificate),
		byKeyID:   make(map[string][]*x509.Certificate),
	}
	for _, cert := range trusted {
		p.add(cert, true)
	}
	for _, cert := range supplied {
		p.add(cert, false)
	}
	return p
}

func (p *Pool) add(cert *x509.Certificate, trusted bool) {
	fp := FingerprintOf(cert)
	if trusted {
		p.trusted[fp] = struct{}{}
	}
	if _, dup := p.seen[fp]; dup {
		return
	}
	p.seen[fp] = struct{}{}
	p.certs = append(p.certs, cert)

	p.bySubject[string(cert.RawSubject)] = append(p.bySubject[string(cert.RawSubject)], cert)
	if len(cert.SubjectKeyId) > 0 {
		p.byKeyID[string(cert.SubjectKeyId)] = append(p.byKeyID[string(cert.SubjectKeyId)], cert)
	}
}

// Len returns the number of distinct certificates in the pool.
func (p *Pool) Len() int { return len(p.certs) }

// Certificates returns the pool contents in insertion order.
func (p *Pool) Certificates() []*x509.Certificate {
	out := make([]*x509.Certificate, len(p.certs))
	copy(out, p.certs)
	return out
}

// Leaf returns the assumed leaf certificate: the last element of the
// normalized pool. It returns nil for an empty pool.
func (p *Pool) Leaf() *x509.Certificate {
	if len(p.certs) == 0 {
		return nil
	}
	return p.certs[len(p.certs)-1]
}

// IsTrusted reports whether the certificate is a member of the trusted set.
func (p *Pool) IsTrusted(cert *x509.Certificate) bool {
	_, ok := p.trusted[FingerprintOf(cert)]
	return ok
}

// issuerCandidates returns pool members that could have issued cert, in pool
// insertion order. When cert carries an authority key identifier, only
// subject-key-identifier matches are considered; the identifier match takes
// precedence and suppresses the name-based fallback.
func (p *Pool) issuerCandidates(cert *x509.Certificate) []*x509.Certificate {
	if len(cert.AuthorityKeyId) > 0 {
		return p.byKeyID[string(cert.AuthorityKeyId)]
	}
	return p.bySubject[string(cert.RawIssuer)]
}
