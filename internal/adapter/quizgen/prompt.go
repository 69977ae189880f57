package quizgen

import "fmt"

// promptTemplate is a contract with the language model: the JSON shape
// and cardinality rules it states are exactly what GeneratedQuiz.Validate
// enforces. Keep the wording stable; tests that mock the model
// boundary depend on it.
const promptTemplate = `
Based on the following transcript, generate a quiz in valid JSON format.

The quiz must follow this EXACT structure:

{
  "title": "Create a concise quiz title based on the transcript topic.",
  "description": "Summarize the transcript in no more than 150 characters.",
  "questions": [
    {
      "question_title": "The question goes here.",
      "question_options": ["Option A", "Option B", "Option C", "Option D"],
      "answer": "The correct answer"
    }
  ]
}

STRICT REQUIREMENTS:
- Generate EXACTLY 10 questions
- Each question must have exactly 4 options
- Only ONE correct answer
- Output MUST be valid JSON
- Do NOT include markdown
- Do NOT include explanations
- Return JSON only

Transcript:
%s
`

// BuildPrompt embeds the transcript verbatim into the instruction
// template. Pure function, no length cap; token limits are the model
// client's concern.
func BuildPrompt(transcript string) string {
	return fmt.Sprintf(promptTemplate, transcript)
}
