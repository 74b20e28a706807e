// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package record

import (
	"encoding/json"
	"fmt"
	"net/netip"

	"github.com/rpkideck/rpki-tree-explorer/src/logger"
)

// MaxASN is the ceiling of the 32-bit ASN space. An asrange whose max equals
// MaxASN is an unbounded inherit marker, never a real delegation.
const MaxASN uint32 = 4294967295

// Kind identifies the type of an archive record.
type Kind string

const (
	// KindCACert is a CA certificate record that may delegate IP and ASN
	// resources to subordinate certificates.
	KindCACert Kind = "ca_cert"
	// KindROA is a Route Origin Authorization record carrying VRPs.
	KindROA Kind = "roa"
)

// ResourceKind tags the variant held by a Resource descriptor.
type ResourceKind uint8

const (
	// ResourcePrefix is an explicit IP prefix delegation.
	ResourcePrefix ResourceKind = iota
	// ResourceRange is an inclusive IP address range delegation.
	ResourceRange
	// ResourceASID is a single ASN delegation.
	ResourceASID
	// ResourceASRange is an inclusive ASN range delegation.
	ResourceASRange
	// ResourceASInherit marks ASN resources inherited from the issuer.
	ResourceASInherit
	// ResourceIPInherit marks IP resources inherited from the issuer.
	ResourceIPInherit
)

// Resource is a tagged resource descriptor from a CA certificate's
// subordinate_resources list. Only the fields matching Kind are meaningful.
type Resource struct {
	Kind ResourceKind

	Prefix             netip.Prefix // ResourcePrefix
	RangeMin, RangeMax netip.Addr   // ResourceRange
	ASID               uint32       // ResourceASID
	ASMin, ASMax       uint32       // ResourceASRange
}

// VRP is a Validated ROA Payload: an origin ASN authorized to announce a prefix.
type VRP struct {
	Prefix netip.Prefix
	ASID   uint32
}

// Record is a fully decoded archive record. TAL, File and CARepository are
// empty when absent from the source line; a non-empty TAL marks a trust
// anchor root.
type Record struct {
	Kind         Kind
	SKI          string
	AKI          string
	TAL          string
	File         string
	CARepository string

	Resources []Resource // KindCACert only
	VRPs      []VRP      // KindROA only
}

// IsRoot reports whether the record carries a Trust Anchor Locator label.
func (r *Record) IsRoot() bool { return r.TAL != "" }

// rawRecord mirrors the archive line shape for JSON decoding.
type rawRecord struct {
	Type                 string                       `json:"type"`
	SKI                  string                       `json:"ski"`
	AKI                  string                       `json:"aki"`
	TAL                  string                       `json:"tal"`
	File                 string                       `json:"file"`
	CARepository         string                       `json:"carepository"`
	SubordinateResources []map[string]json.RawMessage `json:"subordinate_resources"`
	VRPs                 []rawVRP                     `json:"vrps"`
}

type rawVRP struct {
	Prefix string `json:"prefix"`
	ASID   uint32 `json:"asid"`
}

type rawMinMaxAddr struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

type rawMinMaxASN struct {
	Min uint32 `json:"min"`
	Max uint32 `json:"max"`
}

// Decode validates and decodes a single archive line into a Record.
//
// The line is first checked against the embedded JSON schema, then
// unmarshalled into the tagged Record shape. Records whose type is neither
// "ca_cert" nor "roa" (including records with no type at all) decode to
// (nil, nil) and are skipped by the tree builder. Unrecognized resource
// descriptor keys are reported through log and contribute nothing, keeping
// the loader forward-compatible with new descriptor kinds.
//
// Parameters:
//   - line: A single newline-delimited JSON record
//   - log: Destination for descriptor warnings
//
// Returns:
//   - *Record: The decoded record, or nil for ignored record types
//   - error: Schema violation, JSON syntax error, or invalid field content
func Decode(line []byte, log logger.Logger) (*Record, error) {
	if err := validate(line); err != nil {
		return nil, err
	}

	var raw rawRecord
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, err
	}

	kind := Kind(raw.Type)
	if kind != KindCACert && kind != KindROA {
		return nil, nil
	}
	if raw.SKI == "" {
		return nil, fmt.Errorf("%s record without ski", raw.Type)
	}

	rec := &Record{
		Kind:         kind,
		SKI:          raw.SKI,
		AKI:          raw.AKI,
		TAL:          raw.TAL,
		File:         raw.File,
		CARepository: raw.CARepository,
	}

	switch kind {
	case KindCACert:
		for _, entry := range raw.SubordinateResources {
			res, ok, err := decodeResource(entry, log)
			if err != nil {
				return nil, err
			}
			if ok {
				rec.Resources = append(rec.Resources, res)
			}
		}
	case KindROA:
		for _, v := range raw.VRPs {
			pfx, err := netip.ParsePrefix(v.Prefix)
			if err != nil {
				return nil, fmt.Errorf("vrp prefix %q: %w", v.Prefix, err)
			}
			rec.VRPs = append(rec.VRPs, VRP{Prefix: pfx, ASID: v.ASID})
		}
	}

	return rec, nil
}

// decodeResource decodes one subordinate_resources entry. Each entry is a
// single-key object tagging the descriptor variant.
func decodeResource(entry map[string]json.RawMessage, log logger.Logger) (Resource, bool, error) {
	for key, val := range entry {
		switch key {
		case "ip_prefix":
			var s string
			if err := json.Unmarshal(val, &s); err != nil {
				return Resource{}, false, fmt.Errorf("ip_prefix: %w", err)
			}
			pfx, err := netip.ParsePrefix(s)
			if err != nil {
				return Resource{}, false, fmt.Errorf("ip_prefix %q: %w", s, err)
			}
			return Resource{Kind: ResourcePrefix, Prefix: pfx}, true, nil

		case "ip_range":
			var mm rawMinMaxAddr
			if err := json.Unmarshal(val, &mm); err != nil {
				return Resource{}, false, fmt.Errorf("ip_range: %w", err)
			}
			lo, err := netip.ParseAddr(mm.Min)
			if err != nil {
				return Resource{}, false, fmt.Errorf("ip_range min %q: %w", mm.Min, err)
			}
			hi, err := netip.ParseAddr(mm.Max)
			if err != nil {
				return Resource{}, false, fmt.Errorf("ip_range max %q: %w", mm.Max, err)
			}
			return Resource{Kind: ResourceRange, RangeMin: lo, RangeMax: hi}, true, nil

		case "asid":
			var n uint32
			if err := json.Unmarshal(val, &n); err != nil {
				return Resource{}, false, fmt.Errorf("asid: %w", err)
			}
			return Resource{Kind: ResourceASID, ASID: n}, true, nil

		case "asrange":
			var mm rawMinMaxASN
			if err := json.Unmarshal(val, &mm); err != nil {
				return Resource{}, false, fmt.Errorf("asrange: %w", err)
			}
			return Resource{Kind: ResourceASRange, ASMin: mm.Min, ASMax: mm.Max}, true, nil

		case "asid_inherit":
			return Resource{Kind: ResourceASInherit}, true, nil

		case "ip_inherit":
			return Resource{Kind: ResourceIPInherit}, true, nil

		default:
			if log != nil {
				log.Warnf("unrecognized resource descriptor key %q, skipping", key)
			}
		}
	}
	return Resource{}, false, nil
}
