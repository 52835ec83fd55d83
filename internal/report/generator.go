// Package report bridges file uploads to the external reporting agent.
// Attachments are base64-encoded with their original names and sent,
// together with a window of recent events, in a single synchronous call.
// No retry and no timeout beyond what the caller's context carries.
package report

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/finboard-io/engine/internal/models"
	appErr "github.com/finboard-io/engine/pkg/errors"
	"github.com/finboard-io/engine/pkg/utils"
)

const systemPrompt = `You are a financial reporting agent. You receive recent platform events ` +
	`and base64-encoded source documents. Generate the requested financial report, store it, ` +
	`and reply with the storage path or URL of the generated report on the first line, ` +
	`followed by an optional summary.`

// Attachment is one uploaded file, carried by name and raw bytes.
type Attachment struct {
	Name string
	Data []byte
}

// Result is what the bridge reports back to the handler. ReportURL is
// whatever location identifier the agent returned, opaque to us.
type Result struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ReportURL string `json:"report_url"`
}

// chatCompleter is the slice of the OpenAI client the bridge needs.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator invokes the external agent. A Generator built without an API
// key reports Available() == false and refuses to generate.
type Generator struct {
	client chatCompleter
	model  string
	log    *zap.Logger
}

// NewGenerator builds a bridge to an OpenAI-compatible agent endpoint.
func NewGenerator(apiKey, baseURL, model string, log *zap.Logger) *Generator {
	g := &Generator{model: model, log: log}
	if apiKey == "" {
		return g
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	g.client = openai.NewClientWithConfig(cfg)
	return g
}

// Available reports whether the agent is configured.
func (g *Generator) Available() bool {
	return g.client != nil
}

// Generate forwards the attachments and recent events to the agent and
// returns the location it reports. The call is synchronous; any agent
// failure surfaces as a CodeInternal error.
func (g *Generator) Generate(ctx context.Context, attachments []Attachment, events []models.Event) (*Result, error) {
	if !g.Available() {
		return nil, appErr.New(appErr.CodeUnavailable, "report agent not configured")
	}

	userMsg, err := g.buildUserMessage(attachments, events)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "encode report request failed")
	}

	for _, a := range attachments {
		g.log.Debug("forwarding attachment",
			zap.String("name", a.Name),
			zap.Int("bytes", len(a.Data)),
			zap.String("sha256", utils.SumSHA256Hex(a.Data)),
		)
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMsg},
		},
	})
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "report agent call failed")
	}
	if len(resp.Choices) == 0 {
		return nil, appErr.New(appErr.CodeInternal, "report agent returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	location, summary := splitAgentReply(content)
	if location == "" {
		return nil, appErr.New(appErr.CodeInternal, "report agent returned no report location")
	}

	if summary == "" {
		summary = "report generated"
	}
	return &Result{Success: true, Message: summary, ReportURL: location}, nil
}

func (g *Generator) buildUserMessage(attachments []Attachment, events []models.Event) (string, error) {
	eventsJSON, err := json.Marshal(events)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent events (%d):\n%s\n", len(events), eventsJSON)
	fmt.Fprintf(&b, "\nAttachments (%d):\n", len(attachments))
	for _, a := range attachments {
		fmt.Fprintf(&b, "--- %s ---\n%s\n", a.Name, base64.StdEncoding.EncodeToString(a.Data))
	}
	return b.String(), nil
}

// splitAgentReply separates the first line (report location) from the
// rest of the reply (free-form summary).
func splitAgentReply(content string) (location, summary string) {
	line, rest, _ := strings.Cut(content, "\n")
	return strings.TrimSpace(line), strings.TrimSpace(rest)
}
