// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package truststore loads the explicitly trusted certificate set consumed by
// the chain verifier. It reads local PEM/DER bundle files or directories of
// them, deduplicates the material, and hands the result to the caller as an
// already-validated input. The package performs no network fetch and applies
// no freshness policy.
package truststore
