// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package record defines the tagged record model for RPKI archive snapshots:
// CA certificate and ROA records, the resource descriptor union, and VRPs.
// Records are validated against a JSON schema at decode time so downstream
// code never probes loosely-typed maps.
package record
