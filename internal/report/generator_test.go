package report

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/finboard-io/engine/internal/models"
	appErr "github.com/finboard-io/engine/pkg/errors"
)

type fakeAgent struct {
	lastReq openai.ChatCompletionRequest
	reply   string
	err     error
}

func (f *fakeAgent) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.reply}},
		},
	}, nil
}

func newTestGenerator(agent chatCompleter) *Generator {
	return &Generator{client: agent, model: "gpt-4o-mini", log: zap.NewNop()}
}

func TestGenerateForwardsBase64Attachments(t *testing.T) {
	agent := &fakeAgent{reply: "reports/2026/q3.pdf\nQuarterly report stored."}
	g := newTestGenerator(agent)

	attachments := []Attachment{
		{Name: "ledger.csv", Data: []byte("date,amount\n2026-08-01,42")},
		{Name: "notes.txt", Data: []byte("context for the quarter")},
	}
	events := []models.Event{
		{ID: 1, Time: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), Kind: "invoice.paid"},
	}

	res, err := g.Generate(context.Background(), attachments, events)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "reports/2026/q3.pdf", res.ReportURL)
	assert.Equal(t, "Quarterly report stored.", res.Message)

	require.Len(t, agent.lastReq.Messages, 2)
	userMsg := agent.lastReq.Messages[1].Content
	for _, a := range attachments {
		assert.Contains(t, userMsg, a.Name)
		assert.Contains(t, userMsg, base64.StdEncoding.EncodeToString(a.Data))
	}
	assert.Contains(t, userMsg, "invoice.paid")
}

func TestGenerateUnconfiguredAgent(t *testing.T) {
	g := NewGenerator("", "", "gpt-4o-mini", zap.NewNop())
	assert.False(t, g.Available())

	_, err := g.Generate(context.Background(), nil, nil)
	assert.True(t, appErr.IsCode(err, appErr.CodeUnavailable))
}

func TestGenerateAgentFailure(t *testing.T) {
	g := newTestGenerator(&fakeAgent{err: context.DeadlineExceeded})
	_, err := g.Generate(context.Background(), []Attachment{{Name: "a", Data: []byte("x")}}, nil)
	assert.True(t, appErr.IsCode(err, appErr.CodeInternal))
}

func TestGenerateEmptyReply(t *testing.T) {
	g := newTestGenerator(&fakeAgent{reply: "   \n  "})
	_, err := g.Generate(context.Background(), nil, nil)
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeInternal))
	assert.True(t, strings.Contains(err.Error(), "no report location"))
}

func TestGenerateBareLocationReply(t *testing.T) {
	g := newTestGenerator(&fakeAgent{reply: "s3://finboard-reports/out.pdf"})
	res, err := g.Generate(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "s3://finboard-reports/out.pdf", res.ReportURL)
	assert.Equal(t, "report generated", res.Message)
}
