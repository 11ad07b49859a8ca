// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strings"
)

// fallbackName is used when os.Args does not carry an executable path.
const fallbackName = "cert-chain-verifier"

// GetExecutableName returns the executable name without extension,
// cross-platform compatible. It extracts the base name from os.Args[0] and
// removes the .exe extension so CLI usage strings stay clean on every
// operating system:
//   - Linux/macOS: "cert-chain-verifier" from "/usr/local/bin/cert-chain-verifier"
//   - Windows: "cert-chain-verifier" from `C:\bin\cert-chain-verifier.exe`
func GetExecutableName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return fallbackName
	}

	name := filepath.Base(os.Args[0])

	// filepath.Base only understands the host separator; a Windows-style
	// path seen on a Unix host still carries backslashes.
	if strings.Contains(name, "\\") {
		parts := strings.FieldsFunc(name, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		for i := len(parts) - 1; i >= 0; i-- {
			if parts[i] != "" {
				name = parts[i]
				break
			}
		}
	}

	return strings.TrimSuffix(name, ".exe")
}
