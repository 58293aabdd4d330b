package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/wikitok/pkg/config"
)

// envVarPrefix is the prefix for all wikitok environment variables.
const envVarPrefix = "WIKITOK_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeInt
	envTypeSlice
)

type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"JOBS":             {field: "jobs", typ: envTypeInt, help: "Number of parallel workers (0 = auto)"},
	"FORMAT":           {field: "format", typ: envTypeString, help: "Report format: text or json"},
	"RENDER":           {field: "render", typ: envTypeString, help: "Render target: xhtml or plain"},
	"IGNORE":           {field: "ignore", typ: envTypeSlice, help: "Comma-separated list of ignore patterns"},
	"EXTENSIONS":       {field: "extensions", typ: envTypeSlice, help: "Comma-separated list of wiki file extensions"},
	"TOKENS_MAX":       {field: "tokens.max_tokens", typ: envTypeInt, help: "Maximum tokens per file (0 = unlimited)"},
	"INTERWIKI_TARGET": {field: "interwiki.target", typ: envTypeString, help: "Target attribute for rendered links"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with WIKITOK_ (e.g., WIKITOK_JOBS).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice of trimmed,
// non-empty elements.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "render":
		cfg.Render = config.RenderTarget(value)
	case "interwiki.target":
		cfg.Interwiki.Target = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "tokens.max_tokens":
		cfg.Tokens.MaxTokens = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "extensions":
		cfg.Extensions = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	return vars
}
