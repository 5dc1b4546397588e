package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogFile       string `yaml:"log"`
	DocRoot       string `yaml:"doc_root"`
	MergeEventsMs int    `yaml:"write_debounce_ms"`
	ChunkSize     int    `yaml:"chunk_size"`
	ChunkOverlap  int    `yaml:"chunk_overlap"`
	Results       int    `yaml:"results"`
	Store         string `yaml:"store"`
	ChromaAddr    string `yaml:"chroma_addr"`
	RequestSize   int    `yaml:"request_size"`
	ServerAddr    string `yaml:"server_addr"`
	LLM           struct {
		Provider    string   `yaml:"provider"`
		Model       string   `yaml:"model"`
		ApiKey      string   `yaml:"api_key"`
		BaseURL     string   `yaml:"base_url"`
		TimeoutSecs int      `yaml:"timeout_secs"`
		Temperature *float64 `yaml:"temperature"`
		MaxTokens   int64    `yaml:"max_tokens"`
	} `yaml:"llm"`
	OpenAI *struct {
		Model  string `yaml:"model"`
		ApiKey string `yaml:"api_key"`
	} `yaml:"open_ai"`
	Gemini *struct {
		Model  string `yaml:"model"`
		ApiKey string `yaml:"api_key"`
	} `yaml:"gemini"`
}

func readConfig(cfgPath string) (*Config, error) {
	cfgFile, err := os.Open(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open config file: %w", err)
	}
	defer cfgFile.Close()

	cfg := &Config{}
	dec := yaml.NewDecoder(cfgFile)
	err = dec.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = 500
	}
	if cfg.ChunkOverlap == 0 {
		cfg.ChunkOverlap = 50
	}
	if cfg.MergeEventsMs == 0 {
		cfg.MergeEventsMs = 500
	}
	if cfg.Results == 0 {
		cfg.Results = 3
	}
	if cfg.RequestSize == 0 {
		cfg.RequestSize = 100
	}
	if cfg.Store == "" {
		cfg.Store = "chroma"
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "groq"
	}
}
