// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassification(t *testing.T) {
	tr := fixtureTree(t)

	tests := []struct {
		name     string
		ski      string
		isROA    bool
		rirOwned bool
		endNode  bool
		hasROAs  bool
	}{
		{"Trust Anchor", "R0:OT", false, true, false, false},
		{"Umbrella CA", "UU:01", false, true, true, false},
		{"Delegating CA", "MM:01", false, false, false, false},
		{"CA With ROA Child", "CC:01", false, false, true, true},
		{"ROA", "AA:01", true, false, false, false},
		{"Childless Range CA", "RG:01", false, false, true, false},
		{"V6 CA With ROA Child", "V6:01", false, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tr.IsROA(tt.ski)
			require.True(t, ok)
			assert.Equal(t, tt.isROA, got, "IsROA")

			got, ok = tr.IsRIROwned(tt.ski)
			require.True(t, ok)
			assert.Equal(t, tt.rirOwned, got, "IsRIROwned")

			got, ok = tr.IsEndNode(tt.ski)
			require.True(t, ok)
			assert.Equal(t, tt.endNode, got, "IsEndNode")

			got, ok = tr.HasIssuedROAs(tt.ski)
			require.True(t, ok)
			assert.Equal(t, tt.hasROAs, got, "HasIssuedROAs")
		})
	}
}

func TestClassificationUnresolved(t *testing.T) {
	tr := fixtureTree(t)

	// Unknown SKIs and bare placeholders answer ok=false on every
	// predicate; that is distinct from a definite false.
	tr.Insert("CH:99", "PH:99", caCert("CH:99", "PH:99"))

	for _, ski := range []string{"does-not-exist", "PH:99"} {
		if _, ok := tr.IsROA(ski); ok {
			t.Errorf("IsROA(%s) resolved unexpectedly", ski)
		}
		if _, ok := tr.IsRIROwned(ski); ok {
			t.Errorf("IsRIROwned(%s) resolved unexpectedly", ski)
		}
		if _, ok := tr.IsEndNode(ski); ok {
			t.Errorf("IsEndNode(%s) resolved unexpectedly", ski)
		}
		if _, ok := tr.HasIssuedROAs(ski); ok {
			t.Errorf("HasIssuedROAs(%s) resolved unexpectedly", ski)
		}
	}
}
