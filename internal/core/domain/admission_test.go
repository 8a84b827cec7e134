package domain

import (
	"testing"
	"time"
)

func TestRuleForRole(t *testing.T) {
	tests := []struct {
		role     string
		wantName string
		wantMax  int
	}{
		{RoleGuest, "guest-rate-limit", 5},
		{RoleUser, "user-rate-limit", 10},
		{RoleAdmin, "admin-rate-limit", 20},
		{"", "guest-rate-limit", 5},
		{"superuser", "guest-rate-limit", 5},
	}

	for _, tt := range tests {
		rule := RuleForRole(tt.role)
		if rule.Name != tt.wantName {
			t.Errorf("RuleForRole(%q).Name = %q, want %q", tt.role, rule.Name, tt.wantName)
		}
		if rule.Max != tt.wantMax {
			t.Errorf("RuleForRole(%q).Max = %d, want %d", tt.role, rule.Max, tt.wantMax)
		}
		if rule.Interval != time.Minute {
			t.Errorf("RuleForRole(%q).Interval = %v, want 1m", tt.role, rule.Interval)
		}
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole(RoleUser) || !ValidRole(RoleAdmin) {
		t.Fatalf("user and admin must be valid sign-up roles")
	}
	if ValidRole(RoleGuest) || ValidRole("") || ValidRole("root") {
		t.Fatalf("guest and unknown roles must not be storable")
	}
}
