package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	tq "textractqueries"
)

const DefaultDocument = "AT-998923-James-Lebron.pdf"

// DefaultQueries is used when neither QUERIES nor QUERIES_FILE is set.
var DefaultQueries = []tq.Query{
	{Text: "FROM", Alias: "FromQuery", Pages: []string{"1"}},
	{Text: "TO", Alias: "ToQuery", Pages: []string{"1"}},
	{Text: "TOTAL", Alias: "TotalQuery", Pages: []string{"1"}},
}

// Config holds the process wide defaults. It is read once at start and not
// changed afterwards.
type Config struct {
	Bucket   string
	Document string
	Queries  []tq.Query
	Port     int
}

// Load reads the .env file named by TEXTRACT_ENV (or .env) when present and
// builds the configuration from the environment.
func Load() (*Config, error) {
	envFile := os.Getenv("TEXTRACT_ENV")
	if envFile == "" {
		envFile = ".env"
	}
	// missing file is fine, Lambda gets its environment from the function config
	_ = godotenv.Load(envFile)

	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Bucket:   getenv("BUCKET_NAME"),
		Document: getenv("DOCUMENT_NAME"),
		Queries:  DefaultQueries,
		Port:     8080,
	}
	if cfg.Document == "" {
		cfg.Document = DefaultDocument
	}
	if p, err := strconv.Atoi(getenv("PORT")); err == nil && p > 0 {
		cfg.Port = p
	}

	raw := []byte(getenv("QUERIES"))
	if len(raw) == 0 {
		if path := getenv("QUERIES_FILE"); path != "" {
			content, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading queries file %s: %w", path, err)
			}
			raw = content
		}
	}
	if len(raw) > 0 {
		queries, err := ParseQueries(raw)
		if err != nil {
			return nil, err
		}
		cfg.Queries = queries
	}
	return cfg, nil
}

// ParseQueries decodes a YAML (or JSON) list of queries. Every query needs a
// text and an alias.
func ParseQueries(raw []byte) ([]tq.Query, error) {
	var queries []tq.Query
	if err := yaml.Unmarshal(raw, &queries); err != nil {
		return nil, fmt.Errorf("parsing queries: %w", err)
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("parsing queries: empty query list")
	}
	for i, q := range queries {
		if q.Text == "" || q.Alias == "" {
			return nil, fmt.Errorf("parsing queries: query %d needs Text and Alias", i)
		}
	}
	return queries, nil
}
