package main

import (
	"context"

	"github.com/hashicorp/go-version"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	configv1 "github.com/openshift/sippy-chat/pkg/apis/config/v1"
	"github.com/openshift/sippy-chat/pkg/chat"
	"github.com/openshift/sippy-chat/pkg/chatclient"
	"github.com/openshift/sippy-chat/pkg/flags"
	"github.com/openshift/sippy-chat/pkg/flags/configflags"
)

// ClientFlags is shared by every command that talks to the chatbot backend.
type ClientFlags struct {
	ConfigFlags  *configflags.ConfigFlags
	ChatAPIFlags *flags.ChatAPIFlags
	CacheFlags   *flags.CacheFlags

	config *configv1.ChatConfig
}

func NewClientFlags() *ClientFlags {
	return &ClientFlags{
		ConfigFlags:  configflags.NewConfigFlags(),
		ChatAPIFlags: flags.NewChatAPIFlags(),
		CacheFlags:   flags.NewCacheFlags(),
	}
}

func (f *ClientFlags) BindFlags(fs *pflag.FlagSet) {
	f.ConfigFlags.BindFlags(fs)
	f.ChatAPIFlags.BindFlags(fs)
	f.CacheFlags.BindFlags(fs)
}

// Config loads the configuration file once and merges it into the flags.
func (f *ClientFlags) Config() (*configv1.ChatConfig, error) {
	if f.config != nil {
		return f.config, nil
	}
	cfg, err := f.ConfigFlags.GetConfig()
	if err != nil {
		return nil, err
	}
	f.ChatAPIFlags.ApplyConfig(cfg)
	f.config = cfg
	return cfg, nil
}

func (f *ClientFlags) Client() (*chatclient.Client, error) {
	if _, err := f.Config(); err != nil {
		return nil, err
	}
	return f.ChatAPIFlags.GetClient(), nil
}

// Manager builds a session manager from the configuration.
func (f *ClientFlags) Manager(notifier chat.Notifier) (*chat.Manager, error) {
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}
	client := f.ChatAPIFlags.GetClient()

	cacheClient, err := f.CacheFlags.GetCacheClient()
	if err != nil {
		return nil, errors.WithMessage(err, "couldn't get cache client")
	}

	opts := []chat.ManagerOption{
		chat.WithNotifier(notifier),
		chat.WithSuggestionCache(cacheClient, cfg.Session.SuggestionCacheTTL),
	}
	if len(cfg.Session.DefaultSuggestions) > 0 {
		opts = append(opts, chat.WithDefaultSuggestions(cfg.Session.DefaultSuggestions))
	}
	if cfg.Session.Greeting != "" {
		opts = append(opts, chat.WithGreeting(cfg.Session.Greeting))
	}
	if cfg.Server.SupportedVersions != "" {
		constraints, err := version.NewConstraint(cfg.Server.SupportedVersions)
		if err != nil {
			return nil, errors.Wrap(err, "invalid supported backend versions")
		}
		opts = append(opts, chat.WithBackendConstraint(constraints))
	}

	auth := chat.TokenAuth{Tokens: client.Tokens}
	return chat.NewManager(client, auth, nil, opts...), nil
}

func (f *ClientFlags) Store(m *chat.Manager) (*chat.Store, error) {
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}
	return chat.NewStore(m,
		chat.WithSendOptions(chat.SendOptions{
			Context:               cfg.Request.Context,
			EnableEvaluation:      cfg.Request.EnableEvaluation,
			EnableChartGeneration: cfg.Request.EnableChartGeneration,
			EnableInsights:        cfg.Request.EnableInsights,
			Language:              cfg.Request.Language,
		}),
		chat.WithMinLatency(cfg.Session.MinResponseLatency),
	), nil
}

// startSession initializes m and turns the auth sentinels into actionable errors.
func startSession(ctx context.Context, m *chat.Manager) error {
	err := m.Initialize(ctx)
	switch {
	case err == nil:
		log.WithField("session", m.SessionID()).Debug("chat session ready")
		return nil
	case errors.Is(err, chat.ErrAuthRequired):
		return errors.New("not authenticated: pass --token or --token-file with a valid token")
	default:
		return errors.WithMessage(err, "could not start chat session")
	}
}
