// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs provides encoding and decoding operations for [X.509]
// certificates. It supports [PEM], DER and [PKCS7] inputs and is used by the
// chain verifier front ends to parse leaf bundles and trusted root material
// and to format verified paths for output.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
