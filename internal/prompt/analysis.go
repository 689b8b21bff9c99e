package prompt

const analysisHeader = `Analyze the flow and structure of the following rap lyrics in detail. Provide the analysis ONLY as a single JSON object containing the following keys:
- "syllablesPerLine": Array of approximate syllable counts per line (integer[]).
- "rhymeSchemeAnalysis": Description of the overall end rhyme scheme (string).
- "rhymeDetails": Array of objects, each describing a significant rhyme group, including: {"words": string[], "type": "perfect" | "slant" | "multi-syllable" | "internal"} (object[]).
- "rhythmAndPacing": Description of the rhythm and pacing (string).
- "repetitionTechniques": Array of repetition techniques used (string[]).
- "overallComplexity": Brief assessment ("Simple", "Moderate", "Complex") (string).
- "melodySuggestion": A brief suggestion for a potential melodic approach based on the rhythm and structure (string).
- "keyObservations": Array of other key observations about flow or delivery (string[]).
- "formattedLyrics": The original input lyrics reformatted with line breaks indicating natural pauses or melodic phrases, using '\n' for newlines (string).

Lyrics to Analyze:
---
`

// BuildAnalysis asks for a JSON-only flow analysis of lyrics.
func BuildAnalysis(lyrics string) string {
	return analysisHeader + lyrics + "\n---\n\nJSON Output:"
}

// ChatSystem is the persona for the site's chat assistant.
const ChatSystem = "You are Vinn, an AI creative partner specializing in music lyrics and analysis, embedded within the 'A Place In Time Entertainment' platform. Your personality is helpful, knowledgeable, slightly cool, and encouraging. You assist users with generating lyrics, analyzing flow, understanding music concepts, and finding information (like lyrics for existing songs, relying on your training data or formulating search queries if asked directly). Keep responses concise and focused on the user's creative task unless asked for broader conversation. If asked for lyrics you don't know, politely state you couldn't find them in your data but can help generate something similar or analyze lyrics the user provides."
