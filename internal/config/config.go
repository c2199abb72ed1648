package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port     int
	DataPath string
	DBPath   string

	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	YouTubeAPIKey   string

	DefaultProvider string
	ChunkSize       int
	ChunkOverlap    int

	YTDLPPath  string
	FFmpegPath string

	CORSOrigins []string
}

// fileConfig is the optional YAML overlay (CONFIG_FILE). Only non-zero
// fields override the environment.
type fileConfig struct {
	Port            int      `yaml:"port"`
	DataPath        string   `yaml:"data_path"`
	DBPath          string   `yaml:"db_path"`
	GeminiAPIKey    string   `yaml:"gemini_api_key"`
	OpenAIAPIKey    string   `yaml:"openai_api_key"`
	AnthropicAPIKey string   `yaml:"anthropic_api_key"`
	YouTubeAPIKey   string   `yaml:"youtube_api_key"`
	DefaultProvider string   `yaml:"default_provider"`
	ChunkSize       int      `yaml:"chunk_size"`
	ChunkOverlap    int      `yaml:"chunk_overlap"`
	YTDLPPath       string   `yaml:"ytdlp_path"`
	FFmpegPath      string   `yaml:"ffmpeg_path"`
	CORSOrigins     []string `yaml:"cors_origins"`
}

func Load() *Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	dataPath := getEnv("DATA_PATH", "./data")
	chunkSize, _ := strconv.Atoi(getEnv("CHUNK_SIZE", "7000"))
	chunkOverlap, _ := strconv.Atoi(getEnv("CHUNK_OVERLAP", "1000"))

	// CORS origins: comma-separated list or "*" (default)
	corsOrigins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		corsOrigins = make([]string, 0, len(origins))
		for _, o := range origins {
			o = strings.TrimSpace(o)
			if o != "" {
				corsOrigins = append(corsOrigins, o)
			}
		}
	}

	cfg := &Config{
		Port:            port,
		DataPath:        dataPath,
		DBPath:          getEnv("DB_PATH", dataPath+"/summaries.db"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		YouTubeAPIKey:   os.Getenv("YOUTUBE_API_KEY"),
		DefaultProvider: getEnv("DEFAULT_PROVIDER", "gemini"),
		ChunkSize:       chunkSize,
		ChunkOverlap:    chunkOverlap,
		YTDLPPath:       getEnv("YTDLP_PATH", "yt-dlp"),
		FFmpegPath:      getEnv("FFMPEG_PATH", "ffmpeg"),
		CORSOrigins:     corsOrigins,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			log.Fatalf("Failed to load config file %s: %v", path, err)
		}
		log.Printf("Loaded config overlay from %s", path)
	}

	return cfg
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.Port != 0 {
		c.Port = fc.Port
	}
	if fc.DataPath != "" {
		c.DataPath = fc.DataPath
	}
	if fc.DBPath != "" {
		c.DBPath = fc.DBPath
	}
	if fc.GeminiAPIKey != "" {
		c.GeminiAPIKey = fc.GeminiAPIKey
	}
	if fc.OpenAIAPIKey != "" {
		c.OpenAIAPIKey = fc.OpenAIAPIKey
	}
	if fc.AnthropicAPIKey != "" {
		c.AnthropicAPIKey = fc.AnthropicAPIKey
	}
	if fc.YouTubeAPIKey != "" {
		c.YouTubeAPIKey = fc.YouTubeAPIKey
	}
	if fc.DefaultProvider != "" {
		c.DefaultProvider = fc.DefaultProvider
	}
	if fc.ChunkSize != 0 {
		c.ChunkSize = fc.ChunkSize
	}
	if fc.ChunkOverlap != 0 {
		c.ChunkOverlap = fc.ChunkOverlap
	}
	if fc.YTDLPPath != "" {
		c.YTDLPPath = fc.YTDLPPath
	}
	if fc.FFmpegPath != "" {
		c.FFmpegPath = fc.FFmpegPath
	}
	if len(fc.CORSOrigins) > 0 {
		c.CORSOrigins = fc.CORSOrigins
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
