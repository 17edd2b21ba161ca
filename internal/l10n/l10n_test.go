package l10n

import "testing"

func TestT_Untranslated(t *testing.T) {
	if got := T("read configuration from FILE"); got != "read configuration from FILE" {
		t.Errorf("expected untranslated string, got %q", got)
	}
	if got := T("failed to load %s: %v", "/etc/i3xrocks.conf", "denied"); got != "failed to load /etc/i3xrocks.conf: denied" {
		t.Errorf("expected formatted string, got %q", got)
	}
}

func TestTN_Untranslated(t *testing.T) {
	tests := []struct {
		n        uint32
		expected string
	}{
		{n: 1, expected: "1 section"},
		{n: 3, expected: "3 sections"},
	}
	for _, tt := range tests {
		if got := TN("%d section", "%d sections", tt.n, tt.n); got != tt.expected {
			t.Errorf("TN(%d) = %q, want %q", tt.n, got, tt.expected)
		}
	}
}
