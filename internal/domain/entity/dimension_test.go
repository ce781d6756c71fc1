package entity

import "testing"

func TestLookupDimension(t *testing.T) {
	tests := []struct {
		in     string
		want   Dimension
		wantOK bool
	}{
		{"service", DimensionService, true},
		{"usage_type", DimensionUsageType, true},
		{"Usage-Type", DimensionUsageType, true},
		{"LINKED_ACCOUNT", DimensionLinkedAccount, true},
		{"availability_zone", DimensionAZ, true},
		{"az", DimensionAZ, true},
		{"customer", "", false},
		{"account", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := LookupDimension(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("LookupDimension(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestKnownDimensionsSorted(t *testing.T) {
	names := KnownDimensions()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("KnownDimensions not sorted at %d: %q > %q", i, names[i-1], names[i])
		}
	}
}
