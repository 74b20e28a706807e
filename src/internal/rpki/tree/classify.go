// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tree

import (
	"github.com/rpkideck/rpki-tree-explorer/src/internal/rpki/record"
)

// Umbrella marker policy.
//
// RIR umbrella certificates declare "resources" that are really unbounded
// placeholders, not exclusive delegations: the whole ASN space (floor 0 or
// 1 up to the ceiling), a full default route, or an inherit flag. Indexing
// them would make every prefix and ASN search hit the allocator
// certificates, so nodes matching this policy are excluded from per-node
// indexing. The marker shapes below are the policy; change them here, not
// at the call sites.
func isUmbrellaMarker(res record.Resource) bool {
	switch res.Kind {
	case record.ResourceASRange:
		return res.ASMax == record.MaxASN && (res.ASMin == 0 || res.ASMin == 1)
	case record.ResourcePrefix:
		return res.Prefix.Bits() == 0 // 0.0.0.0/0 or ::/0
	case record.ResourceASInherit, record.ResourceIPInherit:
		return true
	}
	return false
}

// isUmbrella reports whether a record is an RIR-owned umbrella certificate:
// either a trust anchor (carries a TAL) or a CA certificate whose declared
// resources include an umbrella marker.
func (t *Tree) isUmbrella(rec *record.Record) bool {
	if rec.IsRoot() {
		return true
	}
	if rec.Kind == record.KindROA {
		return false
	}
	for _, res := range rec.Resources {
		if isUmbrellaMarker(res) {
			return true
		}
	}
	return false
}

// IsROA reports whether ski identifies a ROA record. The second return is
// false when the SKI is unresolved, which is distinct from a false answer.
func (t *Tree) IsROA(ski string) (bool, bool) {
	rec, ok := t.DataOf(ski)
	if !ok {
		return false, false
	}
	return rec.Kind == record.KindROA, true
}

// IsRIROwned reports whether ski identifies an RIR-owned umbrella
// certificate per the umbrella marker policy. The second return is false
// when the SKI is unresolved.
func (t *Tree) IsRIROwned(ski string) (bool, bool) {
	rec, ok := t.DataOf(ski)
	if !ok {
		return false, false
	}
	return t.isUmbrella(rec), true
}

// IsEndNode reports whether ski identifies a certificate that issues no
// further delegated CA certificates: not a ROA, and either childless or
// with only ROA children. The second return is false when the SKI is
// unresolved.
func (t *Tree) IsEndNode(ski string) (bool, bool) {
	id, ok := t.bySKI[ski]
	if !ok || t.nodes[id].rec == nil {
		return false, false
	}
	n := &t.nodes[id]
	if n.rec.Kind == record.KindROA {
		return false, true
	}
	for _, cid := range n.children {
		child := &t.nodes[cid]
		if child.rec == nil || child.rec.Kind != record.KindROA {
			return false, true
		}
	}
	return true, true
}

// HasIssuedROAs reports whether ski identifies a CA certificate that is not
// RIR-owned and has at least one direct ROA child. The second return is
// false when the SKI is unresolved.
func (t *Tree) HasIssuedROAs(ski string) (bool, bool) {
	id, ok := t.bySKI[ski]
	if !ok || t.nodes[id].rec == nil {
		return false, false
	}
	n := &t.nodes[id]
	if n.rec.Kind != record.KindCACert {
		return false, true
	}
	if t.isUmbrella(n.rec) {
		return false, true
	}
	for _, cid := range n.children {
		child := &t.nodes[cid]
		if child.rec != nil && child.rec.Kind == record.KindROA {
			return true, true
		}
	}
	return false, true
}
