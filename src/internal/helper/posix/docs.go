// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-compliant helper functions for
// cross-platform compatibility, particularly executable name handling for
// CLI usage strings. The functions handle differences between operating
// systems gracefully and provide sensible fallbacks for edge cases.
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
