// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"time"
)

// Option adjusts a single Verify call.
type Option func(*options)

type options struct {
	at time.Time
}

// WithValidityTime pins the instant used for certificate validity checks.
// Without it, Verify checks validity at call time. Verification is
// deterministic for a fixed instant.
func WithValidityTime(at time.Time) Option {
	return func(o *options) { o.at = at }
}

// Verify establishes whether the supplied leaf certificate can be traced,
// through a chain of issuer certificates, to a member of trusted.
//
// certs holds the leaf and any intermediates; by pool convention the leaf is
// its last element after normalization. trusted is caller-supplied and
// treated as authoritative. On success Verify returns the unique shortest
// verified path, leaf first and trusted anchor last; every failure is one of
// the sentinel errors in errors.go, wrapped with certificate detail.
//
// Verify keeps no state between calls and is safe for concurrent use.
func Verify(trusted, certs []*x509.Certificate, opts ...Option) (Path, error) {
	o := options{at: time.Now()}
	for _, opt := range opts {
		opt(&o)
	}

	if len(certs) == 0 {
		return nil, ErrNoCertificates
	}

	pool := NewPool(trusted, certs)
	paths, err := pool.buildPaths(pool.Leaf())
	if err != nil {
		return nil, err
	}

	// Retain only paths that touch the trusted set, then pick the shortest.
	// Ties keep the first path discovered, which is deterministic in pool
	// insertion order.
	var best Path
	for _, path := range paths {
		if !anyTrusted(pool, path) {
			continue
		}
		if best == nil || len(path) < len(best) {
			best = path
		}
	}
	if best == nil {
		return nil, ErrNoTrustedPath
	}

	if err := validatePath(best, o.at); err != nil {
		return nil, err
	}
	return best, nil
}

func anyTrusted(pool *Pool, path Path) bool {
	for _, cert := range path {
		if pool.IsTrusted(cert) {
			return true
		}
	}
	return false
}
