// Package cerebro is the terminal's AI sidekick behind the "ask" command.
// It wraps a gollm client. Ask never fails: every
// failure is turned into an in-character line for the terminal.
package cerebro

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/teilomillet/gollm"
)

// Persona is prepended to every question.
const Persona = "You are an elite hacker's AI assistant from the 90s. Your name is CEREBRO. " +
	"You respond with a retro-futuristic, cyberpunk flair. Be concise and to the point. " +
	"The user is a fellow hacker."

// NotConfigured is returned when no client could be built.
const NotConfigured = "ERROR: API_KEY not configured. Cannot connect to CEREBRO. Please check system environment variables."

// Options selects the backend.
type Options struct {
	Provider string
	Model    string
	APIKey   string
	Timeout  time.Duration
}

type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type gollmGenerator struct {
	llm gollm.LLM
}

func (g gollmGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.llm.Generate(ctx, gollm.NewPrompt(prompt))
}

// Client answers questions. The zero value and a nil *Client both answer
// with NotConfigured.
type Client struct {
	gen     generator
	timeout time.Duration
	log     logrus.FieldLogger
}

// New builds a client. A missing API key is not an error: the client is
// returned unconfigured and answers every question with NotConfigured.
func New(opts Options, log logrus.FieldLogger) (*Client, error) {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	c := &Client{timeout: opts.Timeout, log: log}
	if c.timeout <= 0 {
		c.timeout = 15 * time.Second
	}

	provider := opts.Provider
	if provider == "" {
		provider = "anthropic"
	}
	model := opts.Model
	if model == "" {
		model = defaultModel(provider)
	}

	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(keyEnv(provider))
	}
	if provider == "ollama" {
		apiKey = "ollama"
	}
	if apiKey == "" {
		log.WithField("provider", provider).Info("cerebro: no api key, running unconfigured")
		return c, nil
	}
	if env := keyEnv(provider); env != "" {
		os.Setenv(env, apiKey)
	}

	llm, err := gollm.NewLLM(
		gollm.SetProvider(provider),
		gollm.SetModel(model),
		gollm.SetMaxTokens(300),
		gollm.SetTemperature(0.9),
	)
	if err != nil {
		return c, fmt.Errorf("failed to create LLM client: %w", err)
	}
	c.gen = gollmGenerator{llm: llm}
	return c, nil
}

// Configured reports whether questions reach a backend.
func (c *Client) Configured() bool {
	return c != nil && c.gen != nil
}

// Ask sends a question and returns the answer or an error line.
func (c *Client) Ask(ctx context.Context, question string) string {
	if !c.Configured() {
		return NotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := Persona + "\n\n" + strings.TrimSpace(question)
	resp, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		c.log.WithError(err).Warn("cerebro: generate failed")
		return fmt.Sprintf("// CEREBRO CONNECTION FAILED: %s. The Gibson might be down.", err.Error())
	}
	return strings.TrimSpace(resp)
}

func defaultModel(provider string) string {
	switch provider {
	case "openai":
		return "gpt-3.5-turbo"
	case "ollama":
		return "llama3"
	default:
		return "claude-3-haiku-20240307"
	}
}

func keyEnv(provider string) string {
	switch provider {
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	}
	return ""
}
