package gateway

import "fmt"

// Persona prompts sent to the language model
const (
	oraclePrompt = "You are the Oracle from the Matrix. You provide wise, enigmatic, and sometimes cryptic answers to questions. Your responses should be profound and philosophical, fitting the character. You never break character."

	operatorSummaryPrompt = "You are an operator from the Matrix. Summarize the following text in 2-3 cryptic, concise sentences as if you are revealing a hidden truth or an exit path."

	architectPrompt = "You are an expert programmer inside the Matrix. You only provide clean, functional code snippets without any extra explanations or conversational text. Just the code."
)

func codeTaskMessage(language, task string) string {
	return fmt.Sprintf("Generate a code snippet in %s for the following task: %s", language, task)
}

// Client-facing error messages
const (
	msgQuestionRequired = "A question is required."
	msgURLRequired      = "URL is required."
	msgCodeRequired     = "Both language and task are required."
	msgSchemaRequired   = "A schema object is required."
	msgMalformedBody    = "The request body must be a JSON object."
	msgCountRange       = "Count must be between 0 and %d."
	msgUnsupportedFmt   = "Unsupported format. Use json, yaml, or csv."

	msgOracleLost      = "The connection to the Oracle was lost."
	msgExitPathFailed  = "Failed to trace the exit path."
	msgToolboxFailed   = "Could not access the Architect's toolbox."
	msgFabricateFailed = "Data fabrication failed. Schema may be invalid."
)
