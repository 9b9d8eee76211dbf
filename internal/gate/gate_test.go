package gate

import "testing"

func TestDecide(t *testing.T) {
	tests := []struct {
		name            string
		isAuthenticated bool
		isAdmin         bool
		requireAdmin    bool
		want            Decision
	}{
		{"anonymous, plain view", false, false, false, RedirectToLogin},
		{"anonymous, admin view", false, false, true, RedirectToLogin},
		{"anonymous with stray admin flag", false, true, true, RedirectToLogin},
		{"authenticated non-admin, plain view", true, false, false, Allow},
		{"authenticated non-admin, admin view", true, false, true, RedirectToFallback},
		{"authenticated admin, plain view", true, true, false, Allow},
		{"authenticated admin, admin view", true, true, true, Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.isAuthenticated, tt.isAdmin, tt.requireAdmin)
			if got != tt.want {
				t.Errorf("Decide(%v, %v, %v) = %v, want %v",
					tt.isAuthenticated, tt.isAdmin, tt.requireAdmin, got, tt.want)
			}
		})
	}
}

func TestDecisionString(t *testing.T) {
	if Allow.String() != "allow" {
		t.Errorf("unexpected string: %s", Allow)
	}
	if Decision(99).String() != "unknown" {
		t.Errorf("unexpected string for out-of-range decision")
	}
}
