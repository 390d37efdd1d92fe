package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/evelahealth/evela-backend/internal/clients/openai"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

type fakeClient struct {
	jsonObj  map[string]any
	jsonErr  error
	text     string
	textErr  error
	lastName string
}

func (f *fakeClient) GenerateJSON(ctx context.Context, sys, usr, name string, schema map[string]any) (map[string]any, error) {
	f.lastName = name
	return f.jsonObj, f.jsonErr
}

func (f *fakeClient) GenerateJSONWithFile(ctx context.Context, sys, usr string, file openai.FileInput, name string, schema map[string]any) (map[string]any, error) {
	f.lastName = name
	return f.jsonObj, f.jsonErr
}

func (f *fakeClient) GenerateText(ctx context.Context, sys, usr string) (string, error) {
	return f.text, f.textErr
}

func newTestAdapter(t *testing.T, fc *fakeClient) Adapter {
	t.Helper()
	baseLog, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewAdapter(baseLog, fc)
}

func TestParseExtractionDefaults(t *testing.T) {
	obj := map[string]any{
		"report_type": "Blood Panel",
		"summary":     "Mostly normal.",
		"parameters": []any{
			map[string]any{"name": "TSH", "value": "2.1", "unit": "mIU/L", "status": "normal"},
			map[string]any{"name": "", "value": ""},
			"not-an-object",
		},
	}
	res := parseExtraction(obj)
	if res.ReportType != "Blood Panel" {
		t.Fatalf("report_type = %q", res.ReportType)
	}
	if len(res.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(res.Parameters))
	}
	if res.Parameters[0].Status != "Normal" {
		t.Fatalf("status not normalized: %q", res.Parameters[0].Status)
	}
	if res.Parameters[1].Name != "Unknown" || res.Parameters[1].Value != "0" {
		t.Fatalf("missing fields not defaulted: %+v", res.Parameters[1])
	}
}

func TestParseRiskClampsScore(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want int
	}{
		{-5, 0},
		{42, 42},
		{140, 100},
	} {
		r := parseRisk(map[string]any{"score": tc.in, "risk_level": "high", "interpretation": "x"})
		if r.Score != tc.want {
			t.Fatalf("score %v clamped to %d, want %d", tc.in, r.Score, tc.want)
		}
	}
}

func TestParseRiskNormalizesLevel(t *testing.T) {
	for in, want := range map[string]string{
		"low":      "Low",
		"HIGH":     "High",
		"moderate": "Moderate",
		"weird":    "Moderate",
		"":         "Moderate",
	} {
		r := parseRisk(map[string]any{"score": float64(10), "risk_level": in})
		if r.RiskLevel != want {
			t.Fatalf("level %q normalized to %q, want %q", in, r.RiskLevel, want)
		}
	}
}

func TestParseTasksSkipsEmptyDescriptions(t *testing.T) {
	obj := map[string]any{"tasks": []any{
		map[string]any{"task_type": "hydration", "description": "Drink water", "target": "2.5 L"},
		map[string]any{"task_type": "exercise", "description": ""},
		map[string]any{"description": "Walk after lunch"},
	}}
	tasks := parseTasks(obj)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[1].TaskType != "general" {
		t.Fatalf("missing task_type not defaulted: %q", tasks[1].TaskType)
	}
}

func TestExtractParametersEmptyFile(t *testing.T) {
	a := newTestAdapter(t, &fakeClient{})
	if _, err := a.ExtractParameters(context.Background(), nil, "r.pdf", "application/pdf"); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestExtractParametersRequiresParameters(t *testing.T) {
	fc := &fakeClient{jsonObj: map[string]any{"report_type": "x", "summary": "y", "parameters": []any{}}}
	a := newTestAdapter(t, fc)
	if _, err := a.ExtractParameters(context.Background(), []byte("pdf"), "r.pdf", "application/pdf"); err == nil {
		t.Fatal("expected error when model returns no parameters")
	}
}

func TestScoreRiskPropagatesError(t *testing.T) {
	fc := &fakeClient{jsonErr: errors.New("model down")}
	a := newTestAdapter(t, fc)
	if _, err := a.ScoreRisk(context.Background(), nil, nil); err == nil {
		t.Fatal("expected error to propagate")
	}
}

func TestChatReplyUsesModelWhenAvailable(t *testing.T) {
	fc := &fakeClient{text: "Here is some advice."}
	a := newTestAdapter(t, fc)
	reply, fb := a.ChatReply(context.Background(), "how do I sleep better", nil)
	if fb {
		t.Fatal("should not fall back when model answers")
	}
	if reply != "Here is some advice." {
		t.Fatalf("reply = %q", reply)
	}
}

func TestChatReplyFallsBackOnError(t *testing.T) {
	fc := &fakeClient{textErr: errors.New("timeout")}
	a := newTestAdapter(t, fc)
	reply, fb := a.ChatReply(context.Background(), "tell me about PCOS", nil)
	if !fb {
		t.Fatal("expected fallback")
	}
	if !strings.Contains(reply, "PCOS") {
		t.Fatalf("fallback did not match keyword: %q", reply)
	}
}

func TestRiskPromptIncludesParameters(t *testing.T) {
	ext := &ExtractionResult{
		ReportType: "Hormone Panel",
		Summary:    "Elevated TSH.",
		Parameters: []ExtractedParameter{{Name: "TSH", Value: "6.2", Unit: "mIU/L", Status: "High"}},
	}
	_, usr := riskPrompt(ext, map[string]any{"age": 29})
	if !strings.Contains(usr, "TSH") || !strings.Contains(usr, "6.2") {
		t.Fatalf("prompt missing parameter data:\n%s", usr)
	}
	if !strings.Contains(usr, "age") {
		t.Fatalf("prompt missing answers:\n%s", usr)
	}
}
