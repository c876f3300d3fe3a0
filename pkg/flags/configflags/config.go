package configflags

import (
	"os"
	"time"

	"github.com/hashicorp/go-version"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	v1 "github.com/openshift/sippy-chat/pkg/apis/config/v1"
)

const (
	defaultSuggestionCacheTTL = 24 * time.Hour
	defaultHistoryLimit       = 50
	defaultProbeInterval      = 30 * time.Second
)

// ConfigFlags holds the location of the sippy-chat configuration file.
type ConfigFlags struct {
	Path string
}

func NewConfigFlags() *ConfigFlags {
	return &ConfigFlags{
		Path: os.Getenv("SIPPY_CHAT_CONFIG"),
	}
}

func (f *ConfigFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Path,
		"config",
		f.Path,
		"Optional YAML configuration file for sippy-chat")
}

// GetConfig loads the configuration file, if any, and fills in defaults.
func (f *ConfigFlags) GetConfig() (*v1.ChatConfig, error) {
	var chatConfig v1.ChatConfig

	if f.Path != "" {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, errors.WithMessage(err, "could not load config")
		}
		if err := yaml.Unmarshal(data, &chatConfig); err != nil {
			return nil, errors.WithMessage(err, "couldn't unmarshal config")
		}
	}

	if chatConfig.Session.SuggestionCacheTTL == 0 {
		chatConfig.Session.SuggestionCacheTTL = defaultSuggestionCacheTTL
	}
	if chatConfig.Session.HistoryLimit <= 0 {
		chatConfig.Session.HistoryLimit = defaultHistoryLimit
	}
	if chatConfig.HealthProbe.Interval <= 0 {
		chatConfig.HealthProbe.Interval = defaultProbeInterval
	}
	if chatConfig.Server.SupportedVersions != "" {
		if _, err := version.NewConstraint(chatConfig.Server.SupportedVersions); err != nil {
			return nil, errors.Wrapf(err, "invalid supportedVersions %q", chatConfig.Server.SupportedVersions)
		}
	}

	return &chatConfig, nil
}
