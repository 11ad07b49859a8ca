// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	x509chain "github.com/signerkit/cert-chain-verifier/src/internal/x509/chain"
)

var serialCounter int64

// nextSerial returns a process-unique serial number for generated test
// certificates.
func nextSerial() *big.Int {
	return big.NewInt(atomic.AddInt64(&serialCounter, 1))
}

// testIdentity bundles a generated certificate with its signing key so tests
// can issue children from it.
type testIdentity struct {
	cert *x509.Certificate
	key  *ecdsa.PrivateKey
}

func mustKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return key
}

// mustCreate signs template with the parent identity and parses the result.
// When parent is nil the certificate is self-signed with key.
func mustCreate(t *testing.T, template *x509.Certificate, parent *x509.Certificate, key *ecdsa.PrivateKey, parentKey *ecdsa.PrivateKey) *x509.Certificate {
	t.Helper()

	if parent == nil {
		parent = template
		parentKey = key
	}

	der, err := x509.CreateCertificate(rand.Reader, template, parent, &key.PublicKey, parentKey)
	if err != nil {
		t.Fatalf("failed to create certificate: %v", err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("failed to parse created certificate: %v", err)
	}
	return cert
}

// newRootCA generates a self-signed CA valid for one hour around now.
func newRootCA(t *testing.T, commonName string) testIdentity {
	t.Helper()

	key := mustKey(t)
	template := &x509.Certificate{
		SerialNumber:          nextSerial(),
		Subject:               pkix.Name{CommonName: commonName},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	return testIdentity{cert: mustCreate(t, template, nil, key, nil), key: key}
}

// newIntermediateCA generates a CA signed by parent.
func newIntermediateCA(t *testing.T, parent testIdentity, commonName string) testIdentity {
	t.Helper()

	key := mustKey(t)
	template := &x509.Certificate{
		SerialNumber:          nextSerial(),
		Subject:               pkix.Name{CommonName: commonName},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	return testIdentity{cert: mustCreate(t, template, parent.cert, key, parent.key), key: key}
}

// newLeaf generates an end-entity certificate signed by parent.
func newLeaf(t *testing.T, parent testIdentity, commonName string) *x509.Certificate {
	t.Helper()

	key := mustKey(t)
	template := &x509.Certificate{
		SerialNumber: nextSerial(),
		Subject:      pkix.Name{CommonName: commonName},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	return mustCreate(t, template, parent.cert, key, parent.key)
}

func TestVerifyThreeLevelChain(t *testing.T) {
	root := newRootCA(t, "Test Root CA")
	inter := newIntermediateCA(t, root, "Test Intermediate CA")
	leaf := newLeaf(t, inter, "signer@example.com")

	path, err := x509chain.Verify(
		[]*x509.Certificate{root.cert},
		[]*x509.Certificate{inter.cert, leaf},
	)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if len(path) != 3 {
		t.Fatalf("expected path length 3, got %d", len(path))
	}
	if path.Leaf().Subject.CommonName != "signer@example.com" {
		t.Errorf("unexpected leaf: %s", path.Leaf().Subject.CommonName)
	}
	if path.Anchor().Subject.CommonName != "Test Root CA" {
		t.Errorf("unexpected anchor: %s", path.Anchor().Subject.CommonName)
	}
	if got := len(path.Intermediates()); got != 1 {
		t.Errorf("expected 1 intermediate, got %d", got)
	}
}

func TestVerifyDirectlySignedLeaf(t *testing.T) {
	root := newRootCA(t, "Direct Root CA")
	leaf := newLeaf(t, root, "direct-signer")

	path, err := x509chain.Verify(
		[]*x509.Certificate{root.cert},
		[]*x509.Certificate{leaf},
	)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if len(path) != 2 {
		t.Fatalf("expected path length 2, got %d", len(path))
	}
}

func TestVerifyErrorCases(t *testing.T) {
	root := newRootCA(t, "Error Root CA")
	inter := newIntermediateCA(t, root, "Error Intermediate CA")
	leaf := newLeaf(t, inter, "error-leaf")

	orphanRoot := newRootCA(t, "Orphan Root CA")
	orphanLeaf := newLeaf(t, orphanRoot, "orphan-leaf")

	tests := []struct {
		name    string
		trusted []*x509.Certificate
		certs   []*x509.Certificate
		wantErr error
	}{
		{
			name:    "no certificates supplied",
			trusted: []*x509.Certificate{root.cert},
			certs:   nil,
			wantErr: x509chain.ErrNoCertificates,
		},
		{
			name:    "leaf without issuer in pool",
			trusted: []*x509.Certificate{root.cert},
			certs:   []*x509.Certificate{orphanLeaf},
			wantErr: x509chain.ErrNoPathFound,
		},
		{
			name:    "complete chain but no trusted member",
			trusted: nil,
			certs:   []*x509.Certificate{root.cert, inter.cert, leaf},
			wantErr: x509chain.ErrNoTrustedPath,
		},
		{
			name:    "self-signed leaf alone is too short",
			trusted: []*x509.Certificate{root.cert},
			certs:   []*x509.Certificate{root.cert},
			wantErr: x509chain.ErrChainTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := x509chain.Verify(tt.trusted, tt.certs)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyValidityWindow(t *testing.T) {
	root := newRootCA(t, "Window Root CA")

	// Leaf already expired relative to now.
	key := mustKey(t)
	template := &x509.Certificate{
		SerialNumber: nextSerial(),
		Subject:      pkix.Name{CommonName: "expired-leaf"},
		NotBefore:    time.Now().Add(-2 * time.Hour),
		NotAfter:     time.Now().Add(-time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, root.cert, &key.PublicKey, root.key)
	if err != nil {
		t.Fatalf("failed to create certificate: %v", err)
	}
	leaf, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("failed to parse certificate: %v", err)
	}

	trusted := []*x509.Certificate{root.cert}
	supplied := []*x509.Certificate{leaf}

	if _, err := x509chain.Verify(trusted, supplied); !errors.Is(err, x509chain.ErrCertNotValid) {
		t.Errorf("Verify() at now: error = %v, want %v", err, x509chain.ErrCertNotValid)
	}

	// The same chain verifies when pinned inside the leaf's window.
	at := time.Now().Add(-90 * time.Minute)
	path, err := x509chain.Verify(trusted, supplied, x509chain.WithValidityTime(at))
	if err != nil {
		t.Fatalf("Verify() at pinned instant: error = %v", err)
	}
	if len(path) != 2 {
		t.Errorf("expected path length 2, got %d", len(path))
	}
}

func TestVerifyNonCAIntermediate(t *testing.T) {
	root := newRootCA(t, "NotCA Root CA")

	// Intermediate without the CA bit; key identifier set manually since
	// CreateCertificate only generates one for CA templates.
	interKey := mustKey(t)
	interTemplate := &x509.Certificate{
		SerialNumber:          nextSerial(),
		Subject:               pkix.Name{CommonName: "Rogue Intermediate"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		SubjectKeyId:          []byte{0xde, 0xad, 0xbe, 0xef},
	}
	inter := testIdentity{
		cert: mustCreate(t, interTemplate, root.cert, interKey, root.key),
		key:  interKey,
	}
	leaf := newLeaf(t, inter, "notca-leaf")

	_, err := x509chain.Verify(
		[]*x509.Certificate{root.cert},
		[]*x509.Certificate{inter.cert, leaf},
	)
	if !errors.Is(err, x509chain.ErrNotCA) {
		t.Errorf("Verify() error = %v, want %v", err, x509chain.ErrNotCA)
	}
}

func TestVerifyNameChainingMismatch(t *testing.T) {
	// Two self-signed roots sharing one key: the leaf is issued by the first
	// but only the second is in the pool. The key identifier match accepts
	// the signature while the issuer name does not line up.
	sharedKey := mustKey(t)

	makeRoot := func(cn string) *x509.Certificate {
		template := &x509.Certificate{
			SerialNumber:          nextSerial(),
			Subject:               pkix.Name{CommonName: cn},
			NotBefore:             time.Now().Add(-time.Hour),
			NotAfter:              time.Now().Add(time.Hour),
			KeyUsage:              x509.KeyUsageCertSign,
			BasicConstraintsValid: true,
			IsCA:                  true,
		}
		return mustCreate(t, template, nil, sharedKey, nil)
	}

	issuerRoot := makeRoot("Issuing Root CA")
	impostorRoot := makeRoot("Impostor Root CA")
	leaf := newLeaf(t, testIdentity{cert: issuerRoot, key: sharedKey}, "mismatch-leaf")

	_, err := x509chain.Verify(
		[]*x509.Certificate{impostorRoot},
		[]*x509.Certificate{leaf},
	)
	if !errors.Is(err, x509chain.ErrNameChaining) {
		t.Errorf("Verify() error = %v, want %v", err, x509chain.ErrNameChaining)
	}
}

func TestVerifyKeyIdentifierSuppressesNameFallback(t *testing.T) {
	// The pool holds a root whose subject matches the leaf's issuer name but
	// whose key identifier differs. The leaf carries an authority key
	// identifier, so the name-based fallback must not run.
	signingRoot := newRootCA(t, "Shared Name CA")
	lookalikeRoot := newRootCA(t, "Shared Name CA")
	leaf := newLeaf(t, signingRoot, "suppressed-leaf")

	_, err := x509chain.Verify(
		[]*x509.Certificate{lookalikeRoot.cert},
		[]*x509.Certificate{leaf},
	)
	if !errors.Is(err, x509chain.ErrNoPathFound) {
		t.Errorf("Verify() error = %v, want %v", err, x509chain.ErrNoPathFound)
	}
}

func TestVerifyShortestPathWins(t *testing.T) {
	// One CA key is represented twice: as a self-signed root and as a
	// cross-certificate issued by an older root. Both paths are trusted;
	// the two-certificate path must win over the three-certificate one.
	legacyRoot := newRootCA(t, "Legacy Root CA")

	caKey := mustKey(t)
	caTemplate := &x509.Certificate{
		SerialNumber:          nextSerial(),
		Subject:               pkix.Name{CommonName: "Modern Root CA"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	selfSigned := mustCreate(t, caTemplate, nil, caKey, nil)
	crossSigned := mustCreate(t, caTemplate, legacyRoot.cert, caKey, legacyRoot.key)

	leaf := newLeaf(t, testIdentity{cert: selfSigned, key: caKey}, "shortest-leaf")

	path, err := x509chain.Verify(
		[]*x509.Certificate{legacyRoot.cert, selfSigned, crossSigned},
		[]*x509.Certificate{leaf},
	)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if len(path) != 2 {
		t.Fatalf("expected the two-certificate path, got length %d", len(path))
	}
	if x509chain.FingerprintOf(path.Anchor()) != x509chain.FingerprintOf(selfSigned) {
		t.Errorf("expected the self-signed root as anchor, got %s", path.Anchor().Subject.String())
	}
}

func TestVerifyCrossSignedCycleTerminates(t *testing.T) {
	// Two CAs certify each other. Discovery must not loop; with no
	// self-verifying terminal reachable the build dead-ends.
	keyA := mustKey(t)
	keyB := mustKey(t)

	templateA := &x509.Certificate{
		SerialNumber:          nextSerial(),
		Subject:               pkix.Name{CommonName: "Cycle CA A"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
		SubjectKeyId:          []byte{0x0a},
	}
	templateB := &x509.Certificate{
		SerialNumber:          nextSerial(),
		Subject:               pkix.Name{CommonName: "Cycle CA B"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
		SubjectKeyId:          []byte{0x0b},
	}

	certA := mustCreate(t, templateA, templateB, keyA, keyB)
	certB := mustCreate(t, templateB, templateA, keyB, keyA)
	leaf := newLeaf(t, testIdentity{cert: certA, key: keyA}, "cycle-leaf")

	_, err := x509chain.Verify(
		[]*x509.Certificate{certA, certB},
		[]*x509.Certificate{leaf},
	)
	if !errors.Is(err, x509chain.ErrNoPathFound) {
		t.Errorf("Verify() error = %v, want %v", err, x509chain.ErrNoPathFound)
	}
}

func TestVerifyIsDeterministic(t *testing.T) {
	root := newRootCA(t, "Deterministic Root CA")
	inter := newIntermediateCA(t, root, "Deterministic Intermediate CA")
	leaf := newLeaf(t, inter, "deterministic-leaf")

	at := time.Now()
	var first x509chain.Path
	for i := 0; i < 5; i++ {
		path, err := x509chain.Verify(
			[]*x509.Certificate{root.cert},
			[]*x509.Certificate{inter.cert, leaf},
			x509chain.WithValidityTime(at),
		)
		if err != nil {
			t.Fatalf("Verify() run %d: error = %v", i, err)
		}
		if first == nil {
			first = path
			continue
		}
		if len(path) != len(first) {
			t.Fatalf("run %d returned different path length", i)
		}
		for j := range path {
			if x509chain.FingerprintOf(path[j]) != x509chain.FingerprintOf(first[j]) {
				t.Fatalf("run %d returned a different path at index %d", i, j)
			}
		}
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	root := newRootCA(t, "Tamper Root CA")
	inter := newIntermediateCA(t, root, "Tamper Intermediate CA")
	leaf := newLeaf(t, inter, "tamper-leaf")

	// Corrupt the intermediate's signature; it stops being a usable issuer
	// candidate for itself up the chain, killing the only branch.
	tampered := *inter.cert
	tampered.Signature = append([]byte(nil), inter.cert.Signature...)
	tampered.Signature[0] ^= 0xff

	_, err := x509chain.Verify(
		[]*x509.Certificate{root.cert},
		[]*x509.Certificate{&tampered, leaf},
	)
	if !errors.Is(err, x509chain.ErrNoPathFound) {
		t.Errorf("Verify() error = %v, want %v", err, x509chain.ErrNoPathFound)
	}
}

func TestVerifyDuplicatesDoNotAffectResult(t *testing.T) {
	root := newRootCA(t, "Dup Root CA")
	inter := newIntermediateCA(t, root, "Dup Intermediate CA")
	leaf := newLeaf(t, inter, "dup-leaf")

	// The root appears in both sets and the intermediate twice in supplied.
	path, err := x509chain.Verify(
		[]*x509.Certificate{root.cert},
		[]*x509.Certificate{root.cert, inter.cert, inter.cert, leaf},
	)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if len(path) != 3 {
		t.Errorf("expected path length 3, got %d", len(path))
	}
}

func TestVerifyUnrelatedOrderIndependence(t *testing.T) {
	root := newRootCA(t, "Order Root CA")
	inter := newIntermediateCA(t, root, "Order Intermediate CA")
	leaf := newLeaf(t, inter, "order-leaf")
	unrelated := newRootCA(t, "Unrelated Root CA")

	orderings := [][]*x509.Certificate{
		{unrelated.cert, inter.cert, leaf},
		{inter.cert, unrelated.cert, leaf},
	}

	var paths []x509chain.Path
	for _, supplied := range orderings {
		path, err := x509chain.Verify([]*x509.Certificate{root.cert}, supplied)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		paths = append(paths, path)
	}

	if len(paths[0]) != len(paths[1]) {
		t.Fatalf("orderings produced different path lengths")
	}
	for i := range paths[0] {
		if x509chain.FingerprintOf(paths[0][i]) != x509chain.FingerprintOf(paths[1][i]) {
			t.Errorf("orderings diverge at index %d", i)
		}
	}
}

func TestPoolNormalization(t *testing.T) {
	root := newRootCA(t, "Pool Root CA")
	inter := newIntermediateCA(t, root, "Pool Intermediate CA")
	leaf := newLeaf(t, inter, "pool-leaf")

	// The root appears in both sets; it stays a single pool member and keeps
	// its trusted mark.
	pool := x509chain.NewPool(
		[]*x509.Certificate{root.cert},
		[]*x509.Certificate{root.cert, inter.cert, leaf},
	)

	if pool.Len() != 3 {
		t.Errorf("expected 3 distinct certificates, got %d", pool.Len())
	}
	if !pool.IsTrusted(root.cert) {
		t.Error("duplicated root lost its trusted mark")
	}
	if pool.IsTrusted(leaf) {
		t.Error("leaf must not be trusted")
	}
	if got := pool.Leaf(); x509chain.FingerprintOf(got) != x509chain.FingerprintOf(leaf) {
		t.Errorf("expected the last supplied certificate as leaf, got %s", got.Subject.String())
	}
}

func TestPoolEmpty(t *testing.T) {
	pool := x509chain.NewPool(nil, nil)
	if pool.Len() != 0 {
		t.Errorf("expected empty pool, got %d", pool.Len())
	}
	if pool.Leaf() != nil {
		t.Error("expected nil leaf for empty pool")
	}
}
