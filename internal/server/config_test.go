package server

import (
	"testing"

	"github.com/iwvelando/captable/pkg/constants"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		wantErr  bool
	}{
		{"Plain bytes", "1024", 1024, false},
		{"Bytes suffix", "512B", 512, false},
		{"Kilobytes", "256K", 256 * 1024, false},
		{"Kilobytes long", "256KB", 256 * 1024, false},
		{"Megabytes", "10M", 10 * 1024 * 1024, false},
		{"Gigabytes", "1G", 1024 * 1024 * 1024, false},
		{"Lowercase", "2m", 2 * 1024 * 1024, false},
		{"Whitespace", " 4K ", 4 * 1024, false},
		{"Empty uses default", "", constants.DefaultMaxUploadSizeBytes, false},
		{"Missing number", "MB", 0, true},
		{"Garbage", "ten megabytes", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseSize(%q) expected error, got %v", tt.input, result)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSize(%q) returned error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("ParseSize(%q) = %d, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %q, expected %q", cfg.Address, constants.DefaultServerAddress)
	}
	if cfg.UploadSizeBytes() != constants.DefaultMaxUploadSizeBytes {
		t.Errorf("UploadSizeBytes = %d, expected default", cfg.UploadSizeBytes())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("LoadConfig returned error for missing file: %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %q, expected default", cfg.Address)
	}
}
