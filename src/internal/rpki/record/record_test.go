// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package record_test

import (
	"bytes"
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpkideck/rpki-tree-explorer/src/internal/rpki/record"
	"github.com/rpkideck/rpki-tree-explorer/src/logger"
)

func testLogger(buf *bytes.Buffer) logger.Logger {
	return logger.NewMCPLogger(buf, false)
}

func TestDecodeCACert(t *testing.T) {
	line := []byte(`{
		"type": "ca_cert",
		"ski": "AA:BB",
		"aki": "CC:DD",
		"file": "repo/aabb.cer",
		"carepository": "rsync://rpki.example.net/repo/",
		"subordinate_resources": [
			{"ip_prefix": "10.0.0.0/8"},
			{"ip_range": {"min": "192.0.2.0", "max": "192.0.2.255"}},
			{"asid": 65000},
			{"asrange": {"min": 64512, "max": 64520}}
		]
	}`)

	rec, err := record.Decode(line, nil)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, record.KindCACert, rec.Kind)
	assert.Equal(t, "AA:BB", rec.SKI)
	assert.Equal(t, "CC:DD", rec.AKI)
	assert.Equal(t, "repo/aabb.cer", rec.File)
	assert.Equal(t, "rsync://rpki.example.net/repo/", rec.CARepository)
	assert.False(t, rec.IsRoot())

	require.Len(t, rec.Resources, 4)
	assert.Equal(t, record.ResourcePrefix, rec.Resources[0].Kind)
	assert.Equal(t, netip.MustParsePrefix("10.0.0.0/8"), rec.Resources[0].Prefix)
	assert.Equal(t, record.ResourceRange, rec.Resources[1].Kind)
	assert.Equal(t, netip.MustParseAddr("192.0.2.0"), rec.Resources[1].RangeMin)
	assert.Equal(t, netip.MustParseAddr("192.0.2.255"), rec.Resources[1].RangeMax)
	assert.Equal(t, record.ResourceASID, rec.Resources[2].Kind)
	assert.Equal(t, uint32(65000), rec.Resources[2].ASID)
	assert.Equal(t, record.ResourceASRange, rec.Resources[3].Kind)
	assert.Equal(t, uint32(64512), rec.Resources[3].ASMin)
	assert.Equal(t, uint32(64520), rec.Resources[3].ASMax)
}

func TestDecodeTrustAnchor(t *testing.T) {
	line := []byte(`{
		"type": "ca_cert",
		"ski": "R0:OT",
		"tal": "ripe",
		"subordinate_resources": [
			{"asrange": {"min": 0, "max": 4294967295}},
			{"ip_prefix": "0.0.0.0/0"},
			{"asid_inherit": null},
			{"ip_inherit": null}
		]
	}`)

	rec, err := record.Decode(line, nil)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.True(t, rec.IsRoot())
	assert.Equal(t, "ripe", rec.TAL)
	require.Len(t, rec.Resources, 4)
	assert.Equal(t, record.MaxASN, rec.Resources[0].ASMax)
	assert.Equal(t, record.ResourceASInherit, rec.Resources[2].Kind)
	assert.Equal(t, record.ResourceIPInherit, rec.Resources[3].Kind)
}

func TestDecodeROA(t *testing.T) {
	line := []byte(`{
		"type": "roa",
		"ski": "EE:FF",
		"aki": "AA:BB",
		"vrps": [
			{"prefix": "10.1.1.0/24", "asid": 65001},
			{"prefix": "2001:db8::/32", "asid": 65001}
		]
	}`)

	rec, err := record.Decode(line, nil)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, record.KindROA, rec.Kind)
	require.Len(t, rec.VRPs, 2)
	assert.Equal(t, netip.MustParsePrefix("10.1.1.0/24"), rec.VRPs[0].Prefix)
	assert.Equal(t, uint32(65001), rec.VRPs[0].ASID)
	assert.True(t, rec.VRPs[1].Prefix.Addr().Is6())
}

func TestDecodeIgnoredTypes(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"Manifest", `{"type": "manifest", "ski": "11:22"}`},
		{"CRL", `{"type": "crl"}`},
		{"No Type", `{"ski": "33:44"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := record.Decode([]byte(tt.line), nil)
			if err != nil {
				t.Fatalf("Decode returned error: %v", err)
			}
			if rec != nil {
				t.Errorf("expected ignored record, got %+v", rec)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"Not JSON", `this is not json`},
		{"Missing SKI", `{"type": "ca_cert", "aki": "CC:DD"}`},
		{"Numeric SKI", `{"type": "ca_cert", "ski": 42}`},
		{"VRP Without ASID", `{"type": "roa", "ski": "EE:FF", "vrps": [{"prefix": "10.0.0.0/8"}]}`},
		{"VRP Negative ASID", `{"type": "roa", "ski": "EE:FF", "vrps": [{"prefix": "10.0.0.0/8", "asid": -1}]}`},
		{"VRP Bad Prefix", `{"type": "roa", "ski": "EE:FF", "vrps": [{"prefix": "not-a-prefix", "asid": 65001}]}`},
		{"Bad Resource Prefix", `{"type": "ca_cert", "ski": "AA:BB", "subordinate_resources": [{"ip_prefix": "999.0.0.0/8"}]}`},
		{"Bad Range Min", `{"type": "ca_cert", "ski": "AA:BB", "subordinate_resources": [{"ip_range": {"min": "bogus", "max": "10.0.0.1"}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := record.Decode([]byte(tt.line), nil)
			assert.Error(t, err)
			assert.Nil(t, rec)
		})
	}
}

func TestDecodeUnknownDescriptor(t *testing.T) {
	line := []byte(`{
		"type": "ca_cert",
		"ski": "AA:BB",
		"subordinate_resources": [
			{"future_descriptor": {"whatever": true}},
			{"asid": 65010}
		]
	}`)

	var buf bytes.Buffer
	rec, err := record.Decode(line, testLogger(&buf))
	require.NoError(t, err)
	require.NotNil(t, rec)

	// The unknown descriptor is skipped with a warning; the known one survives.
	require.Len(t, rec.Resources, 1)
	assert.Equal(t, uint32(65010), rec.Resources[0].ASID)
	if !strings.Contains(buf.String(), "future_descriptor") {
		t.Errorf("expected warning naming the unknown key, got %q", buf.String())
	}
}
