// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderASCIITree renders the verified path as an ASCII tree, leaf first.
func (p Path) RenderASCIITree() string {
	if len(p) == 0 {
		return "No certificates in path"
	}

	var result strings.Builder
	for i, cert := range p {
		connector := "├── "
		if i == len(p)-1 {
			connector = "└── "
		}
		result.WriteString(fmt.Sprintf("%s%s (%s)\n", connector, cert.Subject.CommonName, p.role(i)))
	}
	return result.String()
}

// RenderTable renders the verified path as a markdown table with subject,
// issuer, validity and key details per certificate.
func (p Path) RenderTable() string {
	if len(p) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"#", "Role", "Subject", "Issuer", "Valid Until", "Key"})

	var rows [][]string
	for i, cert := range p {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			p.role(i),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.NotAfter.Format("2006-01-02"),
			keyDescription(cert.PublicKey),
		})
	}
	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// MarshalVisualizationJSON converts the verified path to structured JSON for
// external tools: per-certificate detail plus the signed-by relationships.
func (p Path) MarshalVisualizationJSON() ([]byte, error) {
	type certData struct {
		Index              int       `json:"index"`
		Role               string    `json:"role"`
		Subject            string    `json:"subject"`
		Issuer             string    `json:"issuer"`
		SerialNumber       string    `json:"serialNumber"`
		SignatureAlgorithm string    `json:"signatureAlgorithm"`
		Key                string    `json:"key"`
		NotBefore          time.Time `json:"notBefore"`
		NotAfter           time.Time `json:"notAfter"`
		IsCA               bool      `json:"isCA"`
	}

	type relationship struct {
		FromIndex int    `json:"fromIndex"`
		ToIndex   int    `json:"toIndex"`
		Type      string `json:"type"`
	}

	type visualization struct {
		Timestamp     string         `json:"timestamp"`
		PathLength    int            `json:"pathLength"`
		Certificates  []certData     `json:"certificates"`
		Relationships []relationship `json:"relationships"`
	}

	data := visualization{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		PathLength:    len(p),
		Certificates:  make([]certData, len(p)),
		Relationships: make([]relationship, 0, max(len(p)-1, 0)),
	}

	for i, cert := range p {
		data.Certificates[i] = certData{
			Index:              i,
			Role:               p.role(i),
			Subject:            cert.Subject.CommonName,
			Issuer:             cert.Issuer.CommonName,
			SerialNumber:       cert.SerialNumber.String(),
			SignatureAlgorithm: cert.SignatureAlgorithm.String(),
			Key:                keyDescription(cert.PublicKey),
			NotBefore:          cert.NotBefore,
			NotAfter:           cert.NotAfter,
			IsCA:               cert.IsCA,
		}
	}

	for i := 0; i < len(p)-1; i++ {
		data.Relationships = append(data.Relationships, relationship{
			FromIndex: i,
			ToIndex:   i + 1,
			Type:      "signed_by",
		})
	}

	return json.MarshalIndent(data, "", "  ")
}

// keyDescription formats the public key algorithm and size for display.
func keyDescription(pub any) string {
	switch key := pub.(type) {
	case *rsa.PublicKey:
		return fmt.Sprintf("%d-bit RSA", key.Size()*8)
	case *ecdsa.PublicKey:
		return fmt.Sprintf("%d-bit ECDSA", key.Curve.Params().BitSize)
	case ed25519.PublicKey:
		return "Ed25519"
	default:
		return "unknown"
	}
}
