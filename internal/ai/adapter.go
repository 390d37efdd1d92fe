package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/evelahealth/evela-backend/internal/clients/openai"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

// ExtractedParameter is one lab value pulled out of an uploaded report.
type ExtractedParameter struct {
	Name           string `json:"name"`
	Value          string `json:"value"`
	Unit           string `json:"unit,omitempty"`
	ReferenceRange string `json:"reference_range,omitempty"`
	Status         string `json:"status,omitempty"`
}

type ExtractionResult struct {
	ReportType string               `json:"report_type"`
	Summary    string               `json:"summary"`
	Parameters []ExtractedParameter `json:"parameters"`
}

type RiskResult struct {
	Score          int    `json:"score"`
	RiskLevel      string `json:"risk_level"`
	Interpretation string `json:"interpretation"`
}

type TaskItem struct {
	TaskType    string `json:"task_type"`
	Description string `json:"description"`
	Target      string `json:"target,omitempty"`
}

type InsightItem struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Severity string `json:"severity,omitempty"`
}

type ChatTurn struct {
	Role    string
	Content string
}

// Adapter is the boundary around the hosted model. The four structured
// operations propagate errors; ChatReply never fails visibly and substitutes
// a canned response instead.
type Adapter interface {
	ExtractParameters(ctx context.Context, fileBytes []byte, fileName, mimeType string) (*ExtractionResult, error)
	ScoreRisk(ctx context.Context, extracted *ExtractionResult, answers map[string]any) (*RiskResult, error)
	GenerateTasks(ctx context.Context, extracted *ExtractionResult, risk *RiskResult) ([]TaskItem, error)
	GenerateInsights(ctx context.Context, extracted *ExtractionResult, answers map[string]any) ([]InsightItem, error)
	ChatReply(ctx context.Context, message string, history []ChatTurn) (reply string, fallback bool)
}

type adapter struct {
	log *logger.Logger
	ai  openai.Client
}

func NewAdapter(baseLog *logger.Logger, client openai.Client) Adapter {
	return &adapter{
		log: baseLog.With("service", "AIAdapter"),
		ai:  client,
	}
}

func (a *adapter) ExtractParameters(ctx context.Context, fileBytes []byte, fileName, mimeType string) (*ExtractionResult, error) {
	if len(fileBytes) == 0 {
		return nil, fmt.Errorf("empty report file")
	}

	sys, usr := extractionPrompt(mimeType)
	obj, err := a.ai.GenerateJSONWithFile(ctx, sys, usr, openai.FileInput{
		Name:     fileName,
		MimeType: mimeType,
		Bytes:    fileBytes,
	}, "report_extraction_v1", schemaExtraction())
	if err != nil {
		return nil, err
	}

	res := parseExtraction(obj)
	if len(res.Parameters) == 0 {
		return nil, fmt.Errorf("no parameters extracted from report")
	}
	return res, nil
}

func (a *adapter) ScoreRisk(ctx context.Context, extracted *ExtractionResult, answers map[string]any) (*RiskResult, error) {
	sys, usr := riskPrompt(extracted, answers)
	obj, err := a.ai.GenerateJSON(ctx, sys, usr, "risk_score_v1", schemaRisk())
	if err != nil {
		return nil, err
	}
	return parseRisk(obj), nil
}

func (a *adapter) GenerateTasks(ctx context.Context, extracted *ExtractionResult, risk *RiskResult) ([]TaskItem, error) {
	sys, usr := tasksPrompt(extracted, risk)
	obj, err := a.ai.GenerateJSON(ctx, sys, usr, "daily_tasks_v1", schemaTasks())
	if err != nil {
		return nil, err
	}
	tasks := parseTasks(obj)
	if len(tasks) == 0 {
		return nil, fmt.Errorf("no tasks generated")
	}
	return tasks, nil
}

func (a *adapter) GenerateInsights(ctx context.Context, extracted *ExtractionResult, answers map[string]any) ([]InsightItem, error) {
	sys, usr := insightsPrompt(extracted, answers)
	obj, err := a.ai.GenerateJSON(ctx, sys, usr, "health_insights_v1", schemaInsights())
	if err != nil {
		return nil, err
	}
	insights := parseInsights(obj)
	if len(insights) == 0 {
		return nil, fmt.Errorf("no insights generated")
	}
	return insights, nil
}

func (a *adapter) ChatReply(ctx context.Context, message string, history []ChatTurn) (string, bool) {
	sys, usr := chatPrompt(message, history)
	text, err := a.ai.GenerateText(ctx, sys, usr)
	if err != nil || strings.TrimSpace(text) == "" {
		a.log.Warn("Chat model call failed, using canned response", "error", err)
		return FallbackReply(message), true
	}
	return text, false
}

// ---------- response parsing ----------

func parseExtraction(obj map[string]any) *ExtractionResult {
	res := &ExtractionResult{
		ReportType: str(obj["report_type"]),
		Summary:    str(obj["summary"]),
	}
	items, _ := obj["parameters"].([]any)
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		p := ExtractedParameter{
			Name:           str(m["name"]),
			Value:          str(m["value"]),
			Unit:           str(m["unit"]),
			ReferenceRange: str(m["reference_range"]),
			Status:         normalizeParamStatus(str(m["status"])),
		}
		if p.Name == "" {
			p.Name = "Unknown"
		}
		if p.Value == "" {
			p.Value = "0"
		}
		res.Parameters = append(res.Parameters, p)
	}
	return res
}

func parseRisk(obj map[string]any) *RiskResult {
	score := num(obj["score"])
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return &RiskResult{
		Score:          score,
		RiskLevel:      normalizeRiskLevel(str(obj["risk_level"])),
		Interpretation: str(obj["interpretation"]),
	}
}

func parseTasks(obj map[string]any) []TaskItem {
	items, _ := obj["tasks"].([]any)
	out := make([]TaskItem, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		t := TaskItem{
			TaskType:    str(m["task_type"]),
			Description: str(m["description"]),
			Target:      str(m["target"]),
		}
		if t.Description == "" {
			continue
		}
		if t.TaskType == "" {
			t.TaskType = "general"
		}
		out = append(out, t)
	}
	return out
}

func parseInsights(obj map[string]any) []InsightItem {
	items, _ := obj["insights"].([]any)
	out := make([]InsightItem, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		in := InsightItem{
			Category: str(m["category"]),
			Title:    str(m["title"]),
			Content:  str(m["content"]),
			Severity: str(m["severity"]),
		}
		if in.Title == "" || in.Content == "" {
			continue
		}
		if in.Category == "" {
			in.Category = "general"
		}
		out = append(out, in)
	}
	return out
}

func normalizeRiskLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "low":
		return "Low"
	case "high":
		return "High"
	default:
		return "Moderate"
	}
}

func normalizeParamStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "high":
		return "High"
	case "low":
		return "Low"
	case "normal":
		return "Normal"
	default:
		return strings.TrimSpace(status)
	}
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func num(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	default:
		return 0
	}
}
