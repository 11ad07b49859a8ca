// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package gc provides reusable byte buffer pooling to reduce garbage
// collection overhead. It abstracts the [bytebufferpool] library behind a
// small interface so that certificate bundle reads and output formatting
// across the application share one pool.
//
// [bytebufferpool]: https://github.com/valyala/bytebufferpool
package gc
