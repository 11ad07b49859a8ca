// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package truststore

import (
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/signerkit/cert-chain-verifier/src/internal/helper/gc"
	x509certs "github.com/signerkit/cert-chain-verifier/src/internal/x509/certs"
	x509chain "github.com/signerkit/cert-chain-verifier/src/internal/x509/chain"
)

// ErrNoTrustedCerts indicates that the bundle location held no certificates.
var ErrNoTrustedCerts = errors.New("truststore: no trusted certificates found")

// bundleExtensions are the file extensions considered when loading a
// directory of trusted certificates.
var bundleExtensions = map[string]bool{
	".pem": true,
	".crt": true,
	".cer": true,
}

// Store holds the deduplicated trusted certificate set in first-seen order.
type Store struct {
	certs []*x509.Certificate
	seen  map[x509chain.Fingerprint]struct{}
	codec *x509certs.Codec
}

// NewStore creates an empty trust store.
func NewStore() *Store {
	return &Store{
		seen:  make(map[x509chain.Fingerprint]struct{}),
		codec: x509certs.New(),
	}
}

// Add registers a certificate as trusted. Structural duplicates are dropped.
// It returns true when the certificate was newly added.
func (s *Store) Add(cert *x509.Certificate) bool {
	fp := x509chain.FingerprintOf(cert)
	if _, dup := s.seen[fp]; dup {
		return false
	}
	s.seen[fp] = struct{}{}
	s.certs = append(s.certs, cert)
	return true
}

// Certificates returns the trusted set in first-seen order.
func (s *Store) Certificates() []*x509.Certificate {
	out := make([]*x509.Certificate, len(s.certs))
	copy(out, s.certs)
	return out
}

// Len returns the number of distinct trusted certificates.
func (s *Store) Len() int { return len(s.certs) }

// AddFromFile loads every certificate from a PEM or DER bundle file.
func (s *Store) AddFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("truststore: open %s: %w", path, err)
	}
	defer file.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(file); err != nil {
		return fmt.Errorf("truststore: read %s: %w", path, err)
	}

	certs, err := s.codec.DecodeBundle(buf.Bytes())
	if err != nil {
		return fmt.Errorf("truststore: decode %s: %w", path, err)
	}
	for _, cert := range certs {
		s.Add(cert)
	}
	return nil
}

// AddFromDir loads every *.pem, *.crt and *.cer file in dir, in lexical
// order. Subdirectories are not descended into.
func (s *Store) AddFromDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("truststore: read dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !bundleExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		if err := s.AddFromFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the trusted certificate set from path, which may be a bundle
// file or a directory of bundle files. It fails with ErrNoTrustedCerts when
// the location yields no certificates.
func Load(path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("truststore: stat %s: %w", path, err)
	}

	store := NewStore()
	if info.IsDir() {
		err = store.AddFromDir(path)
	} else {
		err = store.AddFromFile(path)
	}
	if err != nil {
		return nil, err
	}
	if store.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTrustedCerts, path)
	}
	return store, nil
}
