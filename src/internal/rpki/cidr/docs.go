// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cidr summarizes inclusive IPv4 address ranges into minimal sets of
// covering CIDR blocks for resource aggregation.
package cidr
