package ai

import (
	"fmt"
	"strings"
	"time"
)

// BuildAnalysisPrompt asks the model to break free text into structured
// tasks. The model must answer with the bare JSON object.
func BuildAnalysisPrompt(userInput string, currentPhase string) string {
	var b strings.Builder

	b.WriteString("You are a task analysis AI that helps women organize their tasks according to their hormonal cycles.\n\n")

	if currentPhase != "" {
		b.WriteString("Context: the user is currently in her ")
		b.WriteString(currentPhase)
		b.WriteString(" phase.\n\n")
	}

	b.WriteString(`Analyze the following user input and extract task information. Return a JSON object with the following structure:

{
    "tasks": [
        {
            "title": "Task title",
            "description": "Detailed description",
            "task_type": "one of: creative, analytical, physical, social, administrative, strategic, detail_oriented, communication, learning, reflection",
            "estimated_duration": 30,
            "priority": 3,
            "deadline": "ISO date string if mentioned, null otherwise"
        }
    ],
    "intent": "schedule/update/delete/query"
}

Task types explained:
- creative: brainstorming, design, writing, art
- analytical: data analysis, research, problem-solving
- physical: exercise, active tasks, physical activities
- social: meetings, presentations, networking
- administrative: organizing, filing, admin work
- strategic: planning, goal setting, strategy
- detail_oriented: editing, proofreading, quality control
- communication: calls, emails, presentations
- learning: studying, training, skill development
- reflection: journaling, evaluation, planning

User input: "`)
	b.WriteString(userInput)
	b.WriteString(`"

Respond with only the JSON object, no additional text.`)

	return b.String()
}

// BuildExplanationPrompt asks for a short friendly note about why a task
// landed where it did.
func BuildExplanationPrompt(title, taskType string, scheduledAt time.Time, phase string) string {
	return fmt.Sprintf(`Generate a friendly, encouraging explanation for why a task is being scheduled at a specific time based on hormonal cycle optimization.

Task: %s
Task Type: %s
Scheduled For: %s
Hormonal Phase: %s

Create a warm, supportive explanation that:
1. Explains why this timing is optimal for this type of task
2. Mentions the hormonal phase benefits
3. Keeps it concise (2-3 sentences)

Generate explanation:`,
		title, taskType, scheduledAt.Format("Monday, January 2, 2006"), phase)
}

// BuildInsightsPrompt asks for daily recommendations for the phase.
func BuildInsightsPrompt(phase string, energyLevel int, upcomingTitles []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Generate daily insights and recommendations for a woman based on her hormonal cycle phase and upcoming tasks.

Current Phase: %s
Energy Level: %d/10
`, phase, energyLevel)

	if len(upcomingTitles) > 0 {
		b.WriteString("Upcoming Tasks: ")
		b.WriteString(strings.Join(upcomingTitles, "; "))
		b.WriteString("\n")
	}

	b.WriteString(`
Provide:
1. A brief insight about the current phase
2. Energy and focus recommendations
3. What to prioritize today

Keep it encouraging, practical, and under 200 words.`)

	return b.String()
}

// BuildChatPrompt wraps a user message for the assistant endpoint.
func BuildChatPrompt(message, phase string) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant for women's productivity and hormonal cycle awareness.\n")
	if phase != "" {
		fmt.Fprintf(&b, "The user is currently in her %s phase.\n", phase)
	}
	fmt.Fprintf(&b, "Respond to: \"%s\"\nKeep it supportive and practical.", message)
	return b.String()
}
