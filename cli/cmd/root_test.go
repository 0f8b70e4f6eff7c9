// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies environment variable and flag configuration

package cmd

import (
	"os"
	"testing"
)

func TestGetAPIURL_Default(t *testing.T) {
	os.Unsetenv("GRAPH_SIZING_API_URL")
	apiURL = "" // Reset flag

	url := GetAPIURL()
	if url != "http://localhost:8080" {
		t.Errorf("expected default URL http://localhost:8080, got %s", url)
	}
}

func TestGetAPIURL_FromEnv(t *testing.T) {
	os.Setenv("GRAPH_SIZING_API_URL", "http://backend.example.com")
	defer os.Unsetenv("GRAPH_SIZING_API_URL")
	apiURL = "" // Reset flag

	url := GetAPIURL()
	if url != "http://backend.example.com" {
		t.Errorf("expected http://backend.example.com, got %s", url)
	}
}

func TestGetAPIURL_FlagOverridesEnv(t *testing.T) {
	os.Setenv("GRAPH_SIZING_API_URL", "http://backend.example.com")
	defer os.Unsetenv("GRAPH_SIZING_API_URL")
	apiURL = "http://flag-override.example.com"
	defer func() { apiURL = "" }()

	url := GetAPIURL()
	if url != "http://flag-override.example.com" {
		t.Errorf("expected flag to override env, got %s", url)
	}
}

func TestJSONOutput(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestOutputFormat_JSONFlagWins(t *testing.T) {
	jsonOutput = true
	outputFormat = formatYAML
	defer func() {
		jsonOutput = false
		outputFormat = formatText
	}()

	if got := OutputFormat(); got != formatJSON {
		t.Errorf("expected json, got %s", got)
	}
}

func TestValidateOutputFormat(t *testing.T) {
	for _, f := range []string{"", "text", "json", "yaml"} {
		if err := validateOutputFormat(f); err != nil {
			t.Errorf("unexpected error for %q: %v", f, err)
		}
	}
	if err := validateOutputFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}
