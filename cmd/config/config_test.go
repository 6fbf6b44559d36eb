package config

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"gameDir", "gameDir", true},
		{"gamedir", "gameDir", true},
		{"DOWNLOAD.MAXRATE", "download.maxRate", true},
		{"download", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := lookup(tt.key)
			if ok != tt.ok || got.key != tt.want {
				t.Errorf("lookup(%q) = %q, %v", tt.key, got.key, ok)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    interface{}
		wantErr bool
	}{
		{"download.concurrency", "16", 16, false},
		{"download.concurrency", "many", nil, true},
		{"nonInteractive", "yes", true, false},
		{"nonInteractive", "nein", false, false},
		{"nonInteractive", "maybe", false, true},
		{"launch.java", "system", "system", false},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			entry, _ := lookup(tt.key)
			got, err := parseValue(entry, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseValue() error = %v", err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseValue() = %v, want %v", got, tt.want)
			}
		})
	}
}
