package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultLanguages maps language names to judge language ids.
var DefaultLanguages = map[string]int{
	"PYTHON":          71,
	"JAVA":            62,
	"JAVASCRIPT":      63,
	"C++ (GCC 9.2.0)": 54,
}

type JudgeConfig struct {
	BaseURL        string
	AuthToken      string
	RequestTimeout time.Duration
	PollInterval   time.Duration
	MaxConcurrency int
	Languages      map[string]int
}

func NewJudgeConfig() *JudgeConfig {
	return &JudgeConfig{
		BaseURL:        strings.TrimSuffix(stringEnv("JUDGE0_API_URL", "http://localhost:2358"), "/"),
		AuthToken:      os.Getenv("JUDGE0_AUTH_TOKEN"),
		RequestTimeout: secondsEnv("JUDGE_REQUEST_TIMEOUT_SEC", 10),
		PollInterval:   time.Duration(intEnv("JUDGE_POLL_INTERVAL_MS", 1000)) * time.Millisecond,
		MaxConcurrency: intEnv("JUDGE_MAX_CONCURRENCY", 8),
		Languages:      ParseLanguages(os.Getenv("JUDGE_LANGUAGES")),
	}
}

// ParseLanguages reads a "NAME:ID,NAME:ID" list. Malformed entries are
// skipped; an empty or fully malformed value yields DefaultLanguages.
func ParseLanguages(raw string) map[string]int {
	table := make(map[string]int)
	for _, entry := range strings.Split(raw, ",") {
		sep := strings.LastIndex(entry, ":")
		if sep <= 0 {
			continue
		}
		name := strings.TrimSpace(entry[:sep])
		id, err := strconv.Atoi(strings.TrimSpace(entry[sep+1:]))
		if name == "" || err != nil || id <= 0 {
			continue
		}
		table[name] = id
	}
	if len(table) == 0 {
		table = make(map[string]int, len(DefaultLanguages))
		for name, id := range DefaultLanguages {
			table[name] = id
		}
	}
	return table
}
