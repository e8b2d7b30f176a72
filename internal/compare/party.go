package compare

import (
	"fmt"

	"github.com/sozercan/platform-compare/internal/llm"
)

type Party struct {
	Key      string
	Name     string
	Document string
}

func Conservative(document string) Party {
	return Party{Key: "conservative", Name: "Conservative Party", Document: document}
}

func Liberal(document string) Party {
	return Party{Key: "liberal", Name: "Liberal Party", Document: document}
}

func systemInstruction(p Party) string {
	return fmt.Sprintf(`Based *only* on the provided PDF document for the %[1]s, please summarize their perspective, policies, or commitments related to the user's query.
You must start your response with "The %[1]s's platform for 2025 includes...". You can include point form bullet points if needed.
Focus strictly on information present *within the document*. If the document does not contain relevant information on this specific topic, clearly state that. Do not invent information or use external knowledge. Provide a concise and exhaustive summary.`, p.Name)
}

// failureText is shown in place of a party's summary when its generation
// call fails.
func failureText(p Party, model string, err error) string {
	switch llm.CategoryOf(err) {
	case llm.CategoryUnauthenticated:
		return "Error: Invalid Google API Key."
	case llm.CategoryPermissionDenied:
		return fmt.Sprintf("Error: Permission denied for model '%s' or File API.", model)
	case llm.CategoryModelNotFound:
		return fmt.Sprintf("Error: Model '%s' not found or not available.", model)
	case llm.CategoryQuotaExhausted:
		return "Error: API Quota exceeded."
	case llm.CategoryInvalidArgument:
		return fmt.Sprintf("Error: Invalid argument provided to the AI model for %s. Check logs for details. (Might be related to the file or prompt).", p.Name)
	case llm.CategoryDocumentProcessing:
		return fmt.Sprintf("Error: The AI model encountered an issue processing the %s document. Details: %s", p.Name, llm.Detail(err))
	default:
		detail := llm.Detail(err)
		if detail == "" {
			detail = "Unknown AI Error"
		}
		return fmt.Sprintf("An error occurred while getting the %s perspective via File API. Details: %s", p.Name, detail)
	}
}

func emptyText(p Party) string {
	return fmt.Sprintf("No response text found from AI for %s.", p.Name)
}
