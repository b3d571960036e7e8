package record

import "testing"

func TestKnownSource(t *testing.T) {
	for _, source := range []string{SourceDeals, SourceContacts, SourceCompanies, SourceActivities} {
		if !KnownSource(source) {
			t.Errorf("KnownSource(%q) = false, want true", source)
		}
	}
	for _, source := range []string{"", "invoices", "Deals", "deal"} {
		if KnownSource(source) {
			t.Errorf("KnownSource(%q) = true, want false", source)
		}
	}
}
