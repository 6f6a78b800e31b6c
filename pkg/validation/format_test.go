package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"Pretty format", "pretty", false},
		{"CSV format", "csv", false},
		{"Unknown format", "xml", true},
		{"Empty format", "", true},
		{"Case sensitive", "CSV", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGraceMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		wantErr bool
	}{
		{"Interest only", "interest-only", false},
		{"Deferred", "deferred", false},
		{"Unknown mode", "skip", true},
		{"Empty mode", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGraceMode(tt.mode)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGraceMode(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
			}
		})
	}
}

func TestValidateExtraStrategy(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		wantErr  bool
	}{
		{"Reduce term", "reduce-term", false},
		{"Reduce payment", "reduce-payment", false},
		{"Unknown strategy", "skip-payment", true},
		{"Empty strategy", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExtraStrategy(tt.strategy)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExtraStrategy(%q) error = %v, wantErr %v", tt.strategy, err, tt.wantErr)
			}
		})
	}
}
