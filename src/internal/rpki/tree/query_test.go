// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpkideck/rpki-tree-explorer/src/internal/rpki/record"
	"github.com/rpkideck/rpki-tree-explorer/src/internal/rpki/tree"
)

func TestParseASN(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    uint32
		wantErr bool
	}{
		{"Plain Integer", "65000", 65000, false},
		{"AS Prefix", "AS65000", 65000, false},
		{"Lowercase Prefix", "as65000", 65000, false},
		{"Mixed Case Prefix", "As65000", 65000, false},
		{"Whitespace", "  AS65000 ", 65000, false},
		{"Zero", "0", 0, false},
		{"Ceiling", "4294967295", 4294967295, false},
		{"Overflow", "4294967296", 0, true},
		{"Negative", "-1", 0, true},
		{"Empty", "", 0, true},
		{"Prefix Only", "AS", 0, true},
		{"Garbage", "AS65k", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tree.ParseASN(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchASN(t *testing.T) {
	tr := fixtureTree(t)

	// Only MM:01 declares AS65000 as its own resource. The trust anchor's
	// whole-space range is a marker, so the root never matches.
	assert.Equal(t, []string{"MM:01"}, tr.SearchASN(65000, tree.FilterAll))

	// The VRP origin ASN is not an owned resource of any node.
	assert.Empty(t, tr.SearchASN(65001, tree.FilterAll))

	// Materialized range members match; their neighbors do not.
	assert.Equal(t, []string{"RG:01"}, tr.SearchASN(64513, tree.FilterAll))
	assert.Empty(t, tr.SearchASN(64514, tree.FilterAll))

	// Filtering to roa yields nothing since ROAs are never indexed.
	assert.Empty(t, tr.SearchASN(65000, tree.FilterROA))
}

func TestSearchPrefix(t *testing.T) {
	tr := fixtureTree(t)

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		// Both MM's /8 and CC's /16 cover the ROA prefix; arena order.
		{"Nested Coverage", "10.1.1.0/24", []string{"MM:01", "CC:01"}},
		{"Exact Match", "10.1.0.0/16", []string{"MM:01", "CC:01"}},
		{"Only Coarse Cover", "10.200.0.0/16", []string{"MM:01"}},
		{"Expanded Range Cover", "10.2.0.128/25", []string{"MM:01", "RG:01"}},
		{"Outside Everything", "192.0.2.0/24", nil},
		{"Covering Supernet", "8.0.0.0/6", nil},
		{"IPv6", "2001:db8:1::/48", []string{"V6:01"}},
		{"IPv6 Outside", "2001:db9::/32", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.SearchPrefix(pfx(tt.prefix), tree.FilterAll)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchDeterminism(t *testing.T) {
	tr := fixtureTree(t)

	first := tr.SearchPrefix(pfx("10.1.1.0/24"), tree.FilterAll)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, tr.SearchPrefix(pfx("10.1.1.0/24"), tree.FilterAll))
	}
}

func TestURLFor(t *testing.T) {
	tr := tree.New(nil)
	withFile := caCert("WF:01", "")
	withFile.File = "repo/wf01.cer"
	tr.Insert("WF:01", "", withFile)
	tr.Insert("NF:01", "", caCert("NF:01", ""))

	url, ok := tr.URLFor("WF:01")
	require.True(t, ok)
	assert.Equal(t, "https://console.rpki-client.org/repo/wf01.cer.html", url)

	_, ok = tr.URLFor("NF:01")
	assert.False(t, ok, "record without file has no console URL")

	_, ok = tr.URLFor("does-not-exist")
	assert.False(t, ok)
}

func TestCADomainOf(t *testing.T) {
	tests := []struct {
		name string
		rec  func() *record.Record
		want string
		ok   bool
	}{
		{
			name: "From CARepository",
			rec: func() *record.Record {
				r := caCert("SK:01", "")
				r.CARepository = "rsync://rpki.example.net/repo/member/"
				return r
			},
			want: "rpki.example.net",
			ok:   true,
		},
		{
			name: "Falls Back To File",
			rec: func() *record.Record {
				r := caCert("SK:01", "")
				r.File = "chloe.example.org/repo/sk01.cer"
				return r
			},
			want: "chloe.example.org",
			ok:   true,
		},
		{
			name: "Bare Host",
			rec: func() *record.Record {
				r := caCert("SK:01", "")
				r.CARepository = "rsync://rpki.example.net"
				return r
			},
			want: "rpki.example.net",
			ok:   true,
		},
		{
			name: "Neither Field",
			rec:  func() *record.Record { return caCert("SK:01", "") },
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := tree.New(nil)
			tr.Insert("SK:01", "", tt.rec())

			host, ok := tr.CADomainOf("SK:01")
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, host)
			}
		})
	}
}

// TestDelegationScenario walks one realistic delegation chain end to end:
// trust anchor, delegating intermediate, end-node CA, ROA. The TAL carrier
// is an umbrella and stays out of the search surface, so the delegated ASN
// resolves to the intermediate that actually owns it.
func TestDelegationScenario(t *testing.T) {
	tr := tree.New(nil)
	records := []*record.Record{
		trustAnchor("R:00", "apnic", asrangeRes(0, record.MaxASN)),
		caCert("M:00", "R:00", prefixRes("10.0.0.0/8"), asidRes(65000)),
		caCert("C:00", "M:00", prefixRes("10.1.0.0/16")),
		roa("A:00", "C:00", record.VRP{Prefix: pfx("10.1.1.0/24"), ASID: 65001}),
	}
	for _, rec := range records {
		tr.Insert(rec.SKI, rec.AKI, rec)
	}
	tr.PopulateIndexes()

	assert.Equal(t, []string{"M:00"}, tr.SearchASN(65000, tree.FilterAll))
	assert.Empty(t, tr.SearchASN(65001, tree.FilterAll))
	assert.Equal(t, []string{"M:00", "C:00"},
		tr.SearchPrefix(pfx("10.1.1.0/24"), tree.FilterAll))

	path, err := tr.PathToRoot("A:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"A:00", "C:00", "M:00", "R:00"}, path)

	assert.Equal(t, map[string]string{"APNIC": "R:00"}, tr.RootsByTAL())

	isEnd, ok := tr.IsEndNode("C:00")
	require.True(t, ok)
	assert.True(t, isEnd)
	hasROAs, ok := tr.HasIssuedROAs("C:00")
	require.True(t, ok)
	assert.True(t, hasROAs)
}
