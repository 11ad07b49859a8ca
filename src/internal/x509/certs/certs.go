// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/pem"
	"errors"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that a PEM block is not of CERTIFICATE type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse a certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrNoCertificates indicates that the input decoded cleanly but held no certificates.
	ErrNoCertificates = errors.New("x509certs: no certificates found")
)

// Codec decodes and encodes [X.509] certificates across PEM, DER and PKCS7.
// The zero value is not usable; create one with New.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Codec struct {
	blockType string
}

// New creates a Codec using the standard CERTIFICATE PEM block type.
func New() *Codec {
	return &Codec{blockType: "CERTIFICATE"}
}

// IsPEM reports whether data starts with a decodable PEM block.
func (c *Codec) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// Decode parses a single certificate from PEM, DER or PKCS7 data. For multi
// certificate inputs it returns the first certificate; use DecodeBundle when
// the rest matter.
func (c *Codec) Decode(data []byte) (*x509.Certificate, error) {
	certs, err := c.DecodeBundle(data)
	if err != nil {
		return nil, err
	}
	return certs[0], nil
}

// DecodeBundle parses every certificate held in data. PEM inputs may contain
// any number of concatenated CERTIFICATE blocks; DER inputs may hold either
// concatenated certificates or a PKCS7 structure.
func (c *Codec) DecodeBundle(data []byte) ([]*x509.Certificate, error) {
	if c.IsPEM(data) {
		return c.decodePEMBundle(data)
	}

	if certs, err := x509.ParseCertificates(data); err == nil {
		if len(certs) == 0 {
			return nil, ErrNoCertificates
		}
		return certs, nil
	}

	// Fall back to PKCS7 using Cloudflare's parser.
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParsePKCS7
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificates
	}
	return p.Content.SignedData.Certificates, nil
}

func (c *Codec) decodePEMBundle(data []byte) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate
	for len(data) > 0 {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != c.blockType {
			return nil, ErrInvalidBlockType
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, ErrParseCertificate
		}
		certs = append(certs, cert)
		data = rest
	}
	if len(certs) == 0 {
		return nil, ErrInvalidPEMBlock
	}
	return certs, nil
}

// EncodePEM encodes a certificate to PEM format.
func (c *Codec) EncodePEM(cert *x509.Certificate) []byte {
	block := pem.Block{
		Type:  c.blockType,
		Bytes: cert.Raw,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeDER encodes a certificate to DER format.
func (c *Codec) EncodeDER(cert *x509.Certificate) []byte { return cert.Raw }

// EncodeMultiplePEM encodes certificates to concatenated PEM format.
func (c *Codec) EncodeMultiplePEM(certs []*x509.Certificate) []byte {
	var data []byte
	for _, cert := range certs {
		data = append(data, c.EncodePEM(cert)...)
	}
	return data
}

// EncodeMultipleDER encodes certificates to concatenated DER format.
func (c *Codec) EncodeMultipleDER(certs []*x509.Certificate) []byte {
	var data []byte
	for _, cert := range certs {
		data = append(data, c.EncodeDER(cert)...)
	}
	return data
}
