// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain implements trust-anchored [X.509] certificate path
// construction and validation. It provides capabilities to:
//   - Normalize the union of trusted and supplied certificates into a
//     deduplicated search pool.
//   - Discover every issuer path from a leaf certificate to a self-verifying
//     root using key-identifier and name-based matching confirmed by
//     signature checks.
//   - Select the shortest path that reaches an explicitly trusted
//     certificate and validate it against standard PKI policy (validity
//     period, CA authorization, name chaining).
//
// The package performs no network or filesystem I/O and keeps no state
// between calls; a single Verify call is safe to run concurrently with
// others.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509chain
