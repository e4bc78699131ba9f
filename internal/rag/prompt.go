package rag

import (
	"fmt"
	"strings"

	"github.com/campuskit/advisor/internal/index"
)

const (
	noContextPlaceholder = "(no retrieved documents)"
	noHistoryPlaceholder = "(no chat history available)"

	historyPriorityNote = "IMPORTANT: If the chat history contains information that conflicts with the" +
		" retrieved catalog context, prefer the chat history and act accordingly."
)

// Compose builds the augmented prompt: retrieved catalog context, serialized
// chat history, the student's question, and answering guidelines. History is
// injected only when useHistory is set and historyText is non-empty, and then
// takes priority over retrieved context on conflict.
func Compose(query string, results []index.Result, historyText string, useHistory bool) string {
	contextParts := make([]string, 0, len(results))
	for i, r := range results {
		title := r.Metadata["title"]
		if title == "" {
			title = fmt.Sprintf("Doc %d", i+1)
		}
		contextParts = append(contextParts, fmt.Sprintf("Source %d: %s\n%s", i+1, title, r.Content))
	}

	context := noContextPlaceholder
	if len(contextParts) > 0 {
		context = strings.Join(contextParts, "\n\n")
	}

	historySection := noHistoryPlaceholder
	priorityNote := ""
	if useHistory && historyText != "" {
		historySection = historyText
		priorityNote = historyPriorityNote
	}

	return fmt.Sprintf(`
You are a knowledgeable and friendly university assistant.
%s
Use the following course catalog information and any relevant reasoning to answer the user's question.

CHAT HISTORY:
%s

COURSE CATALOG CONTEXT:
%s

STUDENT QUESTION:
%s

GUIDELINES:
- dont give answers that are not relevant to the question, make sure your answers are based on the catalog context and chat history.
- Never mention the source of the information in the answer.
- dont say hello, hi, or any other pleasantries unless the user does first.
- rely on the catalog context and the chat history (history has priority if enabled) for your answers.
- Be clear, helpful, and concise, dont give answers that are not relevant to the question.
- When possible, include course names, prerequisites, and details.
- If the answer cannot be found in the catalog or history, say so naturally.
`, priorityNote, historySection, context, query)
}
