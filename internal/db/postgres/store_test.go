package postgres

import "testing"

func TestNewStore_RequiresDSN(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Error("empty dsn must be rejected")
	}
}

func TestPgIdent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"beautyfinder:shops:status-loc:idx", "beautyfinder_shops_status_loc_idx"},
		{"plain", "plain"},
		{"a-b:c", "a_b_c"},
	}
	for _, tt := range tests {
		if got := pgIdent(tt.in); got != tt.want {
			t.Errorf("pgIdent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
