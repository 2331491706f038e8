package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/meherkandukuri/vegtrack/internal/flagx"
	"github.com/meherkandukuri/vegtrack/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "300ms" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerURL    string         `json:"server_url"`
	CacheDSN     string         `json:"cache_dsn"`
	SuggestDelay timex.Duration `json:"suggest_delay"`
	NoticeTTL    timex.Duration `json:"notice_ttl"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies known fields into the provided Config.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.CacheDSN != "" {
		cfg.CacheDSN = jc.CacheDSN
	}
	if jc.SuggestDelay.Duration != 0 {
		cfg.SuggestDelay = time.Duration(jc.SuggestDelay.Duration)
	}
	if jc.NoticeTTL.Duration != 0 {
		cfg.NoticeTTL = time.Duration(jc.NoticeTTL.Duration)
	}
}
