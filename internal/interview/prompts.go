package interview

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
)

// QuestionCount is how many technical questions an interview asks.
const QuestionCount = 5

// maxPromptTechnologies caps how much of the stack is sent to the model.
const maxPromptTechnologies = 5

var (
	//go:embed prompts/system.md
	SystemPrompt string

	//go:embed prompts/greeting.md
	Greeting string

	//go:embed prompts/privacy.md
	PrivacyNotice string

	//go:embed prompts/questions.md
	questionsTemplate string

	//go:embed prompts/evaluation.md
	evaluationTemplate string
)

// fieldPrompts ask for the field collected at each stage after the greeting.
var fieldPrompts = map[Stage]string{
	StageEmail:      "Great! Now, what's your **email address**? (We'll use this to contact you about next steps)",
	StagePhone:      "Perfect! And your **phone number**? (We'll keep this for interview scheduling)",
	StageExperience: "Thanks! How many **years of experience** do you have in software development/technology? (e.g., 2, 5, 10)",
	StagePosition:   "Excellent! What **position(s)** are you interested in? (e.g., Software Engineer, Data Scientist, Full-Stack Developer)",
	StageLocation:   "And where are you currently located? (City and Country)",
	StageTechStack: `Wonderful! Now, let's talk about your **technical skills**.

Please list the technologies you're proficient in. Include:
- **Programming Languages** (Python, Java, JavaScript, etc.)
- **Frameworks** (Django, React, Spring Boot, etc.)
- **Databases** (PostgreSQL, MongoDB, etc.)
- **Tools** (Git, Docker, Kubernetes, etc.)

You can list them separated by commas (e.g., "Python, Django, PostgreSQL, Docker")`,
}

// FieldPrompt returns the question asking for the field of stage.
func FieldPrompt(stage Stage) string {
	if p, ok := fieldPrompts[stage]; ok {
		return p
	}
	if stage == StageName {
		return "Could you please tell me your **full name**?"
	}
	return ""
}

// ClarificationPrompt re-asks for the field of stage after unusable input.
func ClarificationPrompt(stage Stage) string {
	return fmt.Sprintf("I didn't quite understand. Could you please provide your %s? (e.g., for experience: '5 years' or just '5')",
		FieldDescription(stage))
}

// Difficulty maps experience to the tier used in the question prompt.
func Difficulty(years float64) string {
	switch {
	case years < 2:
		return "beginner"
	case years < 5:
		return "intermediate"
	default:
		return "advanced"
	}
}

// QuestionsPrompt asks the model for QuestionCount numbered questions.
func QuestionsPrompt(techStack []string, years float64) string {
	if len(techStack) > maxPromptTechnologies {
		techStack = techStack[:maxPromptTechnologies]
	}

	return fillTemplate(questionsTemplate, map[string]string{
		"TECH_STACK": strings.Join(techStack, ", "),
		"YEARS":      strconv.Itoa(int(years)),
		"DIFFICULTY": Difficulty(years),
		"COUNT":      strconv.Itoa(QuestionCount),
	})
}

// EvaluationPrompt asks the model for a three-bullet evaluation of one answer.
func EvaluationPrompt(question, answer, tech string, years float64) string {
	return fillTemplate(evaluationTemplate, map[string]string{
		"TECH":     tech,
		"YEARS":    strconv.Itoa(int(years)),
		"QUESTION": question,
		"ANSWER":   answer,
	})
}

func fillTemplate(template string, values map[string]string) string {
	out := strings.TrimSpace(template)
	for key, value := range values {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}

// QuestionsIntro presents the generated questions and asks the first one.
func QuestionsIntro(questions []string) string {
	var b strings.Builder
	b.WriteString("Great! Based on your tech stack, here are your technical questions:\n\n")
	for i, q := range questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	fmt.Fprintf(&b, "\nLet's start with question 1: %s", questions[0])
	return b.String()
}

// NextQuestionPrompt asks the question at zero-based index.
func NextQuestionPrompt(index int, question string) string {
	return fmt.Sprintf("Let's move on to question %d: %s", index+1, question)
}

// QuestionsPending is shown while no usable questions could be generated.
const QuestionsPending = "Let me generate your technical questions. This is taking longer than expected, send any message and I'll try again."

// Summary renders the fixed conclusion message for record.
func Summary(record *CandidateRecord) string {
	years := "N/A"
	if record.YearsOfExperience != nil {
		years = strconv.FormatFloat(*record.YearsOfExperience, 'f', -1, 64)
	}
	name := record.Name
	if name == "" {
		name = "N/A"
	}

	return fmt.Sprintf(`Thank you for your interest in TalentScout! 🎉

**Interview Summary:**
- Name: %s
- Years of Experience: %s
- Desired Positions: %s
- Tech Stack: %s

**Next Steps:**
Our team will review your responses and contact you within 48 hours with feedback and information about the next interview round.

Good luck! 🚀`,
		name,
		years,
		strings.Join(record.DesiredPositions, ", "),
		strings.Join(record.TechStack, ", "),
	)
}
