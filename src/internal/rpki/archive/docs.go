// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package archive loads RPKI snapshot archives: newline-delimited JSON files,
// optionally gzip-compressed, decoded into the tagged record model.
package archive
