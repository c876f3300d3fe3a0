package flags

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"

	v1 "github.com/openshift/sippy-chat/pkg/apis/config/v1"
	"github.com/openshift/sippy-chat/pkg/chatclient"
)

// ChatAPIFlags holds connection and credential information for the chatbot backend.
type ChatAPIFlags struct {
	ServerURL string
	BasePath  string
	Token     string
	TokenFile string
	Timeout   time.Duration
}

func NewChatAPIFlags() *ChatAPIFlags {
	return &ChatAPIFlags{
		Token:     os.Getenv("SIPPY_CHAT_TOKEN"),
		TokenFile: os.Getenv("SIPPY_CHAT_TOKEN_FILE"),
	}
}

func (f *ChatAPIFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.ServerURL, "server", f.ServerURL, fmt.Sprintf("URL of the chatbot backend (default %s)", chatclient.DefaultServerURL))
	fs.StringVar(&f.BasePath, "base-path", f.BasePath, fmt.Sprintf("Path prefix of the chatbot API (default %s)", chatclient.DefaultBasePath))
	fs.StringVar(&f.Token, "token", f.Token, "Bearer token for the chatbot backend, defaults to $SIPPY_CHAT_TOKEN")
	fs.StringVar(&f.TokenFile, "token-file", f.TokenFile, "File containing the bearer token, re-read on every request. Takes precedence over --token")
	fs.DurationVar(&f.Timeout, "timeout", f.Timeout, "Timeout for a single backend request (default 60s)")
}

// ApplyConfig fills in values not given on the command line.
func (f *ChatAPIFlags) ApplyConfig(cfg *v1.ChatConfig) {
	if cfg == nil {
		return
	}
	if f.ServerURL == "" {
		f.ServerURL = cfg.Server.URL
	}
	if f.BasePath == "" {
		f.BasePath = cfg.Server.BasePath
	}
	if f.Timeout == 0 {
		f.Timeout = cfg.Server.Timeout
	}
}

// GetTokenProvider returns nil when no credentials were configured.
func (f *ChatAPIFlags) GetTokenProvider() chatclient.TokenProvider {
	switch {
	case f.TokenFile != "":
		return chatclient.NewFileTokenProvider(f.TokenFile)
	case f.Token != "":
		return chatclient.NewStaticTokenProvider(f.Token)
	default:
		return nil
	}
}

func (f *ChatAPIFlags) GetClient() *chatclient.Client {
	opts := []chatclient.Option{}
	if f.ServerURL != "" {
		opts = append(opts, chatclient.WithServerURL(f.ServerURL))
	}
	if f.BasePath != "" {
		opts = append(opts, chatclient.WithBasePath(f.BasePath))
	}
	if f.Timeout > 0 {
		opts = append(opts, chatclient.WithHTTPClient(&http.Client{Timeout: f.Timeout}))
	}
	if tp := f.GetTokenProvider(); tp != nil {
		opts = append(opts, chatclient.WithTokenProvider(tp))
	}
	return chatclient.New(opts...)
}
