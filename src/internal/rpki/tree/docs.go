// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package tree builds and queries an immutable snapshot of the RPKI
// certificate hierarchy. It provides the tree builder, the per-node
// resource aggregation over longest-prefix-match tables and ASN sets,
// classification predicates, the query engine (parent/children/path/roots,
// prefix and ASN search), and table/tree rendering for presentation
// collaborators.
package tree
