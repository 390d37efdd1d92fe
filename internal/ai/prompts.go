package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

func extractionPrompt(mimeType string) (string, string) {
	sys := `ROLE: Medical lab report analyst for a women's health application.
TASK: Read the attached report and extract every measurable parameter it contains.
OUTPUT: JSON matching the provided schema.
RULES:
- One entry per distinct parameter; keep the name exactly as printed.
- "value" is the measured value as a string, without units.
- "status" compares the value against the printed reference range; use "Normal" when no range is given.
- "summary" is 2-3 plain sentences a non-clinician can read.
- Never invent parameters that are not in the document.`

	var b strings.Builder
	b.WriteString("Extract all parameters from the attached medical report")
	if mimeType != "" {
		fmt.Fprintf(&b, " (%s)", mimeType)
	}
	b.WriteString(".\n")
	return sys, b.String()
}

func riskPrompt(extracted *ExtractionResult, answers map[string]any) (string, string) {
	sys := `ROLE: Women's health risk assessor.
TASK: Combine extracted lab parameters with the user's questionnaire answers into a single hormonal health risk score.
OUTPUT: JSON matching the provided schema.
RULES:
- "score" is 0-100 where 0 is lowest risk.
- "risk_level" is Low for scores under 34, Moderate for 34-66, High above 66.
- "interpretation" explains the main drivers of the score in plain language.
- This is wellness guidance, not a diagnosis; never name a disease as confirmed.`

	var b strings.Builder
	writeExtractedBlock(&b, extracted)
	writeAnswersBlock(&b, answers)
	b.WriteString("\nProduce the risk score.\n")
	return sys, b.String()
}

func tasksPrompt(extracted *ExtractionResult, risk *RiskResult) (string, string) {
	sys := `ROLE: Women's health coach.
TASK: Produce 3-5 concrete daily tasks tailored to the user's lab results and risk level.
OUTPUT: JSON matching the provided schema.
RULES:
- "task_type" is a short category like hydration, exercise, nutrition, sleep, mindfulness.
- "description" is one actionable sentence.
- "target" is a measurable goal when one applies (e.g. "2.5 L", "8000 steps"), otherwise an empty string.
- Tasks must be safe for self-guided daily practice; no medication or dosage advice.`

	var b strings.Builder
	writeExtractedBlock(&b, extracted)
	if risk != nil {
		fmt.Fprintf(&b, "\nRISK: score %d, level %s.\n%s\n", risk.Score, risk.RiskLevel, risk.Interpretation)
	}
	b.WriteString("\nGenerate the daily tasks.\n")
	return sys, b.String()
}

func insightsPrompt(extracted *ExtractionResult, answers map[string]any) (string, string) {
	sys := `ROLE: Women's health educator.
TASK: Produce 2-4 personalized insights from the user's lab results and questionnaire answers.
OUTPUT: JSON matching the provided schema.
RULES:
- Each insight has a short "title" and a "content" paragraph in plain language.
- "category" is a short topic like hormones, nutrition, lifestyle, cycle.
- "severity" is info unless a parameter is clearly out of range (warning) or urgently so (critical).
- Educational tone; recommend seeing a doctor where appropriate, never diagnose.`

	var b strings.Builder
	writeExtractedBlock(&b, extracted)
	writeAnswersBlock(&b, answers)
	b.WriteString("\nGenerate the insights.\n")
	return sys, b.String()
}

func chatPrompt(message string, history []ChatTurn) (string, string) {
	sys := `ROLE: Supportive women's health assistant for a wellness application.
TASK: Answer the user's question about hormonal health, cycles, nutrition, exercise or stress.
RULES:
- Warm, concise, practical; a few short paragraphs at most.
- General wellness information only; no diagnoses, no medication or dosage advice.
- If the question suggests an emergency, tell the user to contact a doctor or emergency services.`

	var b strings.Builder
	if len(history) > 0 {
		b.WriteString("CONVERSATION SO FAR:\n")
		for _, turn := range history {
			fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(turn.Role), turn.Content)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "USER: %s\n", message)
	return sys, b.String()
}

func writeExtractedBlock(b *strings.Builder, extracted *ExtractionResult) {
	if extracted == nil {
		b.WriteString("LAB RESULTS: none on file.\n")
		return
	}
	fmt.Fprintf(b, "LAB RESULTS (%s): %s\n", extracted.ReportType, extracted.Summary)
	for _, p := range extracted.Parameters {
		fmt.Fprintf(b, "- %s: %s", p.Name, p.Value)
		if p.Unit != "" {
			fmt.Fprintf(b, " %s", p.Unit)
		}
		if p.ReferenceRange != "" {
			fmt.Fprintf(b, " (ref %s)", p.ReferenceRange)
		}
		if p.Status != "" {
			fmt.Fprintf(b, " [%s]", p.Status)
		}
		b.WriteString("\n")
	}
}

func writeAnswersBlock(b *strings.Builder, answers map[string]any) {
	if len(answers) == 0 {
		return
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return
	}
	fmt.Fprintf(b, "\nQUESTIONNAIRE ANSWERS:\n%s\n", string(raw))
}
