package config

import (
	"encoding/json"
	"os"

	"github.com/mvolkov/tastebook/internal/flagx"
	"github.com/mvolkov/tastebook/internal/timex"
)

// jsonConfig is the DTO for JSON unmarshalling. timex.Duration lets the
// timeout be written either as "10s" or as integer nanoseconds.
type jsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	PageSize       int            `json:"page_size"`
	VaultPath      string         `json:"vault_path"`
	KeyPath        string         `json:"key_path"`
}

// parseJSON overlays cfg with values from the file named by -c/-config.
// Absent file flag means no JSON layer. Only fields present in the JSON
// override the defaults.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.PageSize != 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.VaultPath != "" {
		cfg.VaultPath = jc.VaultPath
	}
	if jc.KeyPath != "" {
		cfg.KeyPath = jc.KeyPath
	}
}
