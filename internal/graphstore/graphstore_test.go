// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graphstore

import (
	"testing"

	"github.com/pdiddy/citegraph/pkg/types"
)

func TestRowAsString(t *testing.T) {
	row := Row{"title": "Chip Supply Chains", "year": int64(2019), "missing": nil}

	if got := row.AsString("title"); got != "Chip Supply Chains" {
		t.Errorf("AsString(title) = %q", got)
	}
	if got := row.AsString("missing"); got != types.UnknownText {
		t.Errorf("AsString(missing) = %q, want empty sentinel", got)
	}
	if got := row.AsString("absent"); got != types.UnknownText {
		t.Errorf("AsString(absent) = %q, want empty sentinel", got)
	}
	if got := row.AsString("year"); got != types.UnknownText {
		t.Errorf("AsString(year) = %q, non-string should yield sentinel", got)
	}
}

func TestRowAsInt(t *testing.T) {
	row := Row{"year": int64(2005), "count": 7, "ratio": 3.0, "missing": nil}

	if got := row.AsInt("year"); got != 2005 {
		t.Errorf("AsInt(year) = %d", got)
	}
	if got := row.AsInt("count"); got != 7 {
		t.Errorf("AsInt(count) = %d", got)
	}
	if got := row.AsInt("ratio"); got != 3 {
		t.Errorf("AsInt(ratio) = %d", got)
	}
	if got := row.AsInt("missing"); got != types.UnknownYear {
		t.Errorf("AsInt(missing) = %d, want unknown-year sentinel", got)
	}
	if got := row.AsInt("absent"); got != types.UnknownYear {
		t.Errorf("AsInt(absent) = %d, want unknown-year sentinel", got)
	}
}

func TestRowAsFloat(t *testing.T) {
	row := Row{"pct": 91.5, "count": int64(12)}

	if got := row.AsFloat("pct"); got != 91.5 {
		t.Errorf("AsFloat(pct) = %v", got)
	}
	if got := row.AsFloat("count"); got != 12 {
		t.Errorf("AsFloat(count) = %v", got)
	}
	if got := row.AsFloat("absent"); got != 0 {
		t.Errorf("AsFloat(absent) = %v, want 0", got)
	}
}
