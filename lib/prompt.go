package lib

import "strings"

const promptPreamble = `You are a helpful assistant that answers questions based ONLY on the provided context.
If you don't know the answer based on the provided context, say "I don't have enough information in the provided context to answer this question."
Do not make up information or use prior knowledge outside of the provided context.`

const promptClosing = `Please provide a helpful, direct, and well-structured answer based only on the information in the provided context.`

// BuildPrompt composes the instruction preamble, the accumulated
// context, optional prior conversation, and the new question into the
// final prompt text. The PREVIOUS CONVERSATION block is omitted
// entirely when chatHistory is empty.
func BuildPrompt(question, context, chatHistory string) string {
	var sb strings.Builder
	sb.WriteString(promptPreamble)
	sb.WriteString("\n\nCONTEXT:\n")
	sb.WriteString(context)
	sb.WriteString("\n\n")
	if chatHistory != "" {
		sb.WriteString("PREVIOUS CONVERSATION:\n")
		sb.WriteString(chatHistory)
		sb.WriteString("\n\n")
	}
	sb.WriteString("USER QUESTION: ")
	sb.WriteString(question)
	sb.WriteString("\n\n")
	sb.WriteString(promptClosing)
	return sb.String()
}

// SerializeHistory renders chat turns as "User: ..." / "Assistant: ..."
// lines in insertion order
func SerializeHistory(history []ChatTurn) string {
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		label := "Assistant"
		if turn.Role == "user" {
			label = "User"
		}
		lines = append(lines, label+": "+turn.Content)
	}
	return strings.Join(lines, "\n")
}
