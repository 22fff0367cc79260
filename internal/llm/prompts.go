package llm

import _ "embed"

var (
	//go:embed prompts/warranty_v1.txt
	warrantyPromptV1 string
)

// ExtractionPrompt returns the system instruction shared by all extraction
// strategies. Every strategy requires the same three JSON fields so the
// parser downstream stays uniform.
func ExtractionPrompt() string {
	return warrantyPromptV1
}
