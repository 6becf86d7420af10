package openai

import (
	"fmt"
	"strings"

	"github.com/kilianp07/studyplan/core/planner"
)

// FocusNone is written in place of an empty focus subject.
const FocusNone = "none"

// BreakSubject is the subject name the model is told to use for breaks.
const BreakSubject = "Break"

const promptTemplate = `You are an expert study planner.
Build a detailed study schedule FOR TODAY as time blocks.

Data:
- Total study hours: %.2f
- Start time: %s
- Subjects (name, priority, minimum minutes):
%s
- Main focus subject: %s

Rules:
- Respect the total study time.
- Give more time to higher priority subjects and to the focus subject.
- Do not create blocks shorter than 20 minutes.
- Avoid more than 90 consecutive minutes on the same subject.
- You may include short breaks (subject "%s"), but count them inside the total hours.
- Use consistent times starting from the start time.

Response format:
- Reply ONLY with VALID JSON, with no text before or after.
- Do NOT use ` + "```" + ` or markdown.
- Exact structure:
{
  "blocks": [
    { "start": "08:00", "end": "09:00", "subject": "Math" }
  ]
}`

// BuildPrompt renders the instruction text sent as the request input.
func BuildPrompt(req planner.RemoteRequest) string {
	var subjects strings.Builder
	for _, s := range req.Subjects {
		fmt.Fprintf(&subjects, "- %s (priority %d, minimum %d min)\n", s.Name, s.Priority, s.MinMinutes)
	}
	focus := req.Focus
	if focus == "" {
		focus = FocusNone
	}
	return fmt.Sprintf(promptTemplate, req.TotalHours, req.Start, subjects.String(), focus, BreakSubject)
}
