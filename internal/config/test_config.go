package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	d := defaultConfig()
	return &Config{
		API: APIConfig{
			BaseURL:        "http://127.0.0.1:8000",
			Timeout:        5 * time.Second,
			UserAgent:      "sift-test/1.0",
			SearchPageSize: 10,
			ChunkPageSize:  100,
		},
		History: HistoryConfig{
			Enabled:    false, // Tests open their own stores under t.TempDir()
			MaxEntries: 50,
		},
		UI:      d.UI,
		Browser: d.Browser,
		Log:     LogConfig{Level: "off"},
	}
}
