// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Command rpki-tree-explorer indexes an RPKI archive snapshot into a
// certificate hierarchy tree and answers path, root, prefix, and ASN
// queries from the command line.
package main
