package docs

import (
	_ "embed"
)

// InvestigationGuidePrompt embeds the claims fraud investigation guide.
// It tells the agent which analysis to run first and how to read the scores.
//
//go:embed prompts/investigation_guide.md
var InvestigationGuidePrompt string
