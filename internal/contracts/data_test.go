package contracts

import "testing"

func TestCoverageSnapshot_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		snapshot CoverageSnapshot
		want     bool
	}{
		{
			name:     "valid snapshot",
			snapshot: CoverageSnapshot{WindowRows: 120, QualityScore: 0.9},
			want:     true,
		},
		{
			name:     "low quality score",
			snapshot: CoverageSnapshot{WindowRows: 120, QualityScore: 0.5},
			want:     false,
		},
		{
			name:     "no rows in window",
			snapshot: CoverageSnapshot{WindowRows: 0, QualityScore: 0.8},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snapshot.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoverageSnapshot_CoverageRate(t *testing.T) {
	snapshot := CoverageSnapshot{
		Coverage: map[string]float64{"month_coverage": 1.0, "value_coverage": 0.5},
	}
	if got := snapshot.CoverageRate(); got != 0.75 {
		t.Errorf("CoverageRate() = %v, want 0.75", got)
	}

	empty := CoverageSnapshot{}
	if got := empty.CoverageRate(); got != 0 {
		t.Errorf("CoverageRate() = %v, want 0", got)
	}
}

func TestStages(t *testing.T) {
	for _, s := range AllStages() {
		if !IsValidStage(s.String()) {
			t.Errorf("IsValidStage(%q) = false", s)
		}
		if s.ShortName() == "UNKNOWN" {
			t.Errorf("ShortName(%q) = UNKNOWN", s)
		}
	}
	if IsValidStage("S9_NOPE") {
		t.Error("IsValidStage accepted an unknown stage")
	}
}
