package ai

func schemaExtraction() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"report_type": map[string]any{"type": "string"},
			"summary":     map[string]any{"type": "string"},
			"parameters": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"name":            map[string]any{"type": "string"},
						"value":           map[string]any{"type": "string"},
						"unit":            map[string]any{"type": "string"},
						"reference_range": map[string]any{"type": "string"},
						"status":          map[string]any{"type": "string", "enum": []string{"Normal", "High", "Low"}},
					},
					"required": []string{"name", "value", "unit", "reference_range", "status"},
				},
			},
		},
		"required": []string{"report_type", "summary", "parameters"},
	}
}

func schemaRisk() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"score":          map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"risk_level":     map[string]any{"type": "string", "enum": []string{"Low", "Moderate", "High"}},
			"interpretation": map[string]any{"type": "string"},
		},
		"required": []string{"score", "risk_level", "interpretation"},
	}
}

func schemaTasks() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"tasks": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"task_type":   map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"target":      map[string]any{"type": "string"},
					},
					"required": []string{"task_type", "description", "target"},
				},
			},
		},
		"required": []string{"tasks"},
	}
}

func schemaInsights() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"insights": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"category": map[string]any{"type": "string"},
						"title":    map[string]any{"type": "string"},
						"content":  map[string]any{"type": "string"},
						"severity": map[string]any{"type": "string", "enum": []string{"info", "warning", "critical"}},
					},
					"required": []string{"category", "title", "content", "severity"},
				},
			},
		},
		"required": []string{"insights"},
	}
}
