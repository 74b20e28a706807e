// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tree

import (
	"net/netip"

	"github.com/gaissmai/bart"

	"github.com/rpkideck/rpki-tree-explorer/src/internal/rpki/cidr"
	"github.com/rpkideck/rpki-tree-explorer/src/internal/rpki/record"
)

// Filter restricts a collection or search to one record kind.
type Filter string

const (
	// FilterAll visits both CA certificates and ROAs.
	FilterAll Filter = "all"
	// FilterCACert skips ROA nodes.
	FilterCACert Filter = "ca_cert"
	// FilterROA skips CA certificate nodes.
	FilterROA Filter = "roa"
)

// matches reports whether a record kind passes the filter.
func (f Filter) matches(k record.Kind) bool {
	return f == FilterAll || string(f) == string(k)
}

// Index holds the self-owned resources of a node (or the union over a
// subtree): one longest-prefix-match table per address family plus an ASN
// set. Table values are the SKI of the node that directly contributed the
// prefix, enabling per-contributor attribution within a subtree.
type Index struct {
	V4   *bart.Table[string]
	V6   *bart.Table[string]
	ASNs map[uint32]struct{}
}

// NewIndex returns an empty resource index.
func NewIndex() *Index {
	return &Index{
		V4:   new(bart.Table[string]),
		V6:   new(bart.Table[string]),
		ASNs: make(map[uint32]struct{}),
	}
}

// addPrefix routes a prefix into the matching family table. Full default
// routes are excluded: they are inherit placeholders, far too coarse to
// count as an owned resource.
func (x *Index) addPrefix(pfx netip.Prefix, contributor string) {
	if pfx.Bits() == 0 {
		return
	}
	if pfx.Addr().Is4() {
		x.V4.Insert(pfx, contributor)
	} else {
		x.V6.Insert(pfx, contributor)
	}
}

// HasASN reports whether asn is in the index's ASN set.
func (x *Index) HasASN(asn uint32) bool {
	_, ok := x.ASNs[asn]
	return ok
}

// CoversPrefix reports whether either family table contains a prefix that
// covers pfx (exact or longest-prefix match, not general overlap).
func (x *Index) CoversPrefix(pfx netip.Prefix) bool {
	if pfx.Addr().Is4() {
		_, ok := x.V4.LookupPrefix(pfx)
		return ok
	}
	_, ok := x.V6.LookupPrefix(pfx)
	return ok
}

// Collect gathers resources from the subtree rooted at ski by breadth-first
// traversal. The root is always visited; with recursive set, every
// descendant is visited too. Each visited node contributes ONLY its own
// directly-declared resources; nothing is aggregated upward:
//
//   - ca_cert: explicit prefixes as-is, ranges expanded to minimal CIDR
//     blocks, single ASNs and bounded ASN ranges materialized into the set.
//     A range reaching the ASN space ceiling is an unbounded inherit marker
//     and is skipped with a warning rather than materialized. Inherit flags
//     contribute nothing.
//   - roa: each VRP contributes its prefix. The VRP's origin ASN is
//     deliberately NOT added: a ROA's own resource is the prefix it attests
//     to, not the ASN it authorizes to originate it.
//
// filter skips nodes of the other kind; their children are still traversed.
//
// Returns the collected index and false if ski is unknown.
func (t *Tree) Collect(ski string, filter Filter, recursive bool) (*Index, bool) {
	id, ok := t.bySKI[ski]
	if !ok {
		return nil, false
	}

	idx := NewIndex()
	queue := []nodeID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		n := &t.nodes[cur]
		if recursive {
			queue = append(queue, n.children...)
		}
		if n.rec == nil || !filter.matches(n.rec.Kind) {
			continue
		}

		switch n.rec.Kind {
		case record.KindCACert:
			t.collectResources(idx, n)
		case record.KindROA:
			for _, vrp := range n.rec.VRPs {
				idx.addPrefix(vrp.Prefix, n.ski)
			}
		}
	}
	return idx, true
}

// collectResources folds one CA certificate's declared resources into idx.
func (t *Tree) collectResources(idx *Index, n *node) {
	for _, res := range n.rec.Resources {
		switch res.Kind {
		case record.ResourcePrefix:
			idx.addPrefix(res.Prefix, n.ski)

		case record.ResourceRange:
			blocks, err := cidr.SummarizeRange(res.RangeMin, res.RangeMax)
			if err != nil {
				t.log.Warnf("unusable ip_range on %s: %v", n.ski, err)
				continue
			}
			for _, pfx := range blocks {
				idx.addPrefix(pfx, n.ski)
			}

		case record.ResourceASID:
			idx.ASNs[res.ASID] = struct{}{}

		case record.ResourceASRange:
			if res.ASMax == record.MaxASN {
				t.log.Warnf("large ASN range: %d - %d", res.ASMin, res.ASMax)
				continue
			}
			for asn := res.ASMin; asn <= res.ASMax; asn++ {
				idx.ASNs[asn] = struct{}{}
			}

		case record.ResourceASInherit, record.ResourceIPInherit:
			// inherited resources belong to the issuer, nothing to add
		}
	}
}

// PopulateIndexes computes the self-owned resource index for every eligible
// node: ROAs and RIR umbrella certificates are excluded, everything else
// gets Collect(node, all, recursive=false) cached on the node. This is the
// only index materialized up front; full-subtree unions stay available
// on demand through Collect with recursive set, trading memory for
// occasional recomputation.
func (t *Tree) PopulateIndexes() {
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.rec == nil {
			continue
		}
		if n.rec.Kind == record.KindROA {
			continue
		}
		if t.isUmbrella(n.rec) {
			continue
		}
		idx, _ := t.Collect(n.ski, FilterAll, false)
		n.idx = idx
	}
}

// IndexOf returns the cached self-owned resource index for ski. The second
// return is false when the SKI is unknown or the node is not indexed
// (ROAs and RIR umbrella certificates never are).
func (t *Tree) IndexOf(ski string) (*Index, bool) {
	id, ok := t.bySKI[ski]
	if !ok || t.nodes[id].idx == nil {
		return nil, false
	}
	return t.nodes[id].idx, true
}
