package v1

import "time"

// ChatConfig is the YAML document read by sippy-chat. Command line flags take
// precedence over the values found here.
type ChatConfig struct {
	Server      ServerConfig      `yaml:"server"`
	Session     SessionConfig     `yaml:"session"`
	Request     RequestConfig     `yaml:"request"`
	Chart       ChartConfig       `yaml:"chart,omitempty"`
	HealthProbe HealthProbeConfig `yaml:"healthProbe,omitempty"`
}

type ServerConfig struct {
	// URL of the chatbot backend, e.g. http://localhost:8000.
	URL string `yaml:"url"`

	// BasePath is prefixed to every endpoint. Defaults to /api/v1/chatbot.
	BasePath string `yaml:"basePath,omitempty"`

	// Timeout for a single request.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// SupportedVersions is a go-version constraint the backend's reported
	// version should satisfy, e.g. ">= 1.0, < 2.0".
	SupportedVersions string `yaml:"supportedVersions,omitempty"`
}

type SessionConfig struct {
	Greeting           string        `yaml:"greeting,omitempty"`
	DefaultSuggestions []string      `yaml:"defaultSuggestions,omitempty"`
	SuggestionCacheTTL time.Duration `yaml:"suggestionCacheTTL,omitempty"`
	HistoryLimit       int           `yaml:"historyLimit,omitempty"`

	// MinResponseLatency holds the reply back so the typing indicator is visible.
	MinResponseLatency time.Duration `yaml:"minResponseLatency,omitempty"`
}

// RequestConfig holds the flags forwarded with every chat request. Unset flags
// are omitted so the backend applies its own defaults.
type RequestConfig struct {
	Language              string                 `yaml:"language,omitempty"`
	EnableEvaluation      *bool                  `yaml:"enableEvaluation,omitempty"`
	EnableChartGeneration *bool                  `yaml:"enableChartGeneration,omitempty"`
	EnableInsights        *bool                  `yaml:"enableInsights,omitempty"`
	Context               map[string]interface{} `yaml:"context,omitempty"`
}

type ChartConfig struct {
	Palette []string `yaml:"palette,omitempty"`
	Width   int      `yaml:"width,omitempty"`
	Height  int      `yaml:"height,omitempty"`
}

type HealthProbeConfig struct {
	Interval time.Duration `yaml:"interval,omitempty"`
}
