package llm

import "strings"

const baseSystemPrompt = `
You are the virtual assistant of a marketing platform, chatting with a lead inside a product demo.

Your role:
- Answer questions about webinars, demos, pricing and recordings.
- Keep the lead engaged and move them toward the next concrete step.
- You never invent dates, prices or links that were not mentioned in the conversation.

Style guidelines:
- Answer in the SAME LANGUAGE as the user.
- Be brief: 1–3 short sentences.
- Friendly, upbeat, never pushy.
- Do not list options yourself; the interface shows follow-up choices separately.
`

// Prompt represents the system prompt + the content to send as "user".
type Prompt struct {
	System string
	User   string
}

// BuildPrompt builds the system prompt and the user content from the new
// message and the rendered conversation so far.
func BuildPrompt(userMessage, convContext string) Prompt {
	var userContent strings.Builder
	if c := strings.TrimSpace(convContext); c != "" {
		userContent.WriteString("Conversation so far:\n")
		userContent.WriteString(c)
		userContent.WriteString("\n\n")
	}
	userContent.WriteString("New user message:\n")
	userContent.WriteString(userMessage)

	return Prompt{
		System: strings.TrimSpace(baseSystemPrompt),
		User:   userContent.String(),
	}
}
