package ai

import (
	"strings"
	"unicode"
)

type fallbackRule struct {
	keywords []string
	reply    string
}

// fallbackRules is evaluated in order; the first rule whose keyword appears in
// the message wins, so the same input always gets the same reply.
var fallbackRules = []fallbackRule{
	{
		keywords: []string{"pcos", "polycystic"},
		reply: "PCOS (polycystic ovary syndrome) is a common hormonal condition. Regular exercise, " +
			"a balanced diet low in refined sugar, and consistent sleep can help manage symptoms. " +
			"If you suspect PCOS, please consult a gynecologist for proper evaluation.",
	},
	{
		keywords: []string{"thyroid", "tsh"},
		reply: "Thyroid hormones affect energy, weight, mood and menstrual cycles. Common signs of " +
			"imbalance include fatigue, weight changes and irregular periods. A simple TSH blood " +
			"test can check your thyroid function; talk to your doctor about getting one.",
	},
	{
		keywords: []string{"exercise", "workout", "activity"},
		reply: "Aim for about 30 minutes of moderate activity most days. Walking, yoga and strength " +
			"training all support hormonal balance. Start small and build up gradually rather than " +
			"pushing too hard at once.",
	},
	{
		keywords: []string{"diet", "food", "nutrition", "eat"},
		reply: "A hormone-friendly diet centers on whole foods: vegetables, lean protein, healthy " +
			"fats and whole grains. Limiting refined sugar and processed food helps keep insulin " +
			"steady, which supports the rest of your hormonal system.",
	},
	{
		keywords: []string{"stress", "anxiety", "sleep"},
		reply: "Chronic stress raises cortisol, which can disrupt cycles and sleep. Short daily " +
			"practices help: a few minutes of deep breathing, a regular bedtime, and time away " +
			"from screens before sleep. If stress feels unmanageable, reach out to a professional.",
	},
	{
		keywords: []string{"symptom", "pain", "cramp", "irregular"},
		reply: "Tracking symptoms alongside your cycle helps you and your doctor spot patterns. " +
			"Log what you feel and when in the app. Severe or persistent pain is always worth " +
			"discussing with a clinician rather than waiting out.",
	},
}

const fallbackDefault = "I can help you with questions about hormonal health, PCOS, thyroid, " +
	"diet, exercise, stress and cycle symptoms. What would you like to know more about?"

// FallbackReply returns a canned assistant response for when the model is
// unreachable. It never fails.
func FallbackReply(message string) string {
	words := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			for _, w := range words {
				// Prefix match so "cramps" hits "cramp" but "weather"
				// never hits "eat".
				if strings.HasPrefix(w, kw) {
					return rule.reply
				}
			}
		}
	}
	return fallbackDefault
}
