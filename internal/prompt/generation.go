// Package prompt builds the instruction text sent to the text-generation
// backend. Everything here is pure: no I/O and no error paths.
package prompt

import (
	"strings"

	"github.com/aplaceintime/api/internal/model"
)

const (
	preamble = "You are an expert songwriting assistant collaborating with a user, acting as a specific AI writing team member or a lead integrating multiple perspectives. "

	leadBlend = "Consider elements from all other available perspectives (poetry, mood, pop culture, analogy, philosophy, era, genre) as appropriate. "

	coreTask = "\n\nYour task is to generate compelling and creative song lyrics based on the user's idea/request below. Adhere strictly to the selected agent roles, genre/era/mood parameters, and any provided analysis context/style."

	labelInstruction = " Clearly label the different sections of the song using bracketed tags like [Verse 1], [Chorus], [Bridge], [Hook], [Pre-Chorus], [Outro], etc. **Each label must be on its own line.**"

	formattingDirective = "\n\n" + `IMPORTANT: Format the generated lyrics output carefully. Use '\n' ONLY for line breaks. Each distinct lyrical line MUST start on a new line (begin with '\n' if it's not the very first line). Also use '\n' within a lyrical line to indicate significant rhythmic pauses or breaths, like this flow example: "Iced out, I flex this\nnew drop\nFresh pack\nwho's next up?". Ensure structure labels like [Chorus] are also on their own lines, preceded by '\n'. Output ONLY the formatted lyrics, with no other explanatory text before or after.`
)

// BuildGeneration composes the lyric generation instruction for req.
func BuildGeneration(req *model.GenerateRequest) string {
	var b strings.Builder
	b.WriteString(preamble)

	writeRoles(&b, req.Agents)

	if req.Genre != "" {
		b.WriteString("The target genre is " + req.Genre + ". ")
	}
	if req.Era != "" {
		b.WriteString("The desired era style is " + req.Era + ". ")
	}
	if req.Mood != "" {
		b.WriteString("The mood should be " + req.Mood + ". ")
	}

	if desc, ok := req.FlowPattern.Description(); ok {
		b.WriteString("\n\nUse a " + string(req.FlowPattern) + " flow pattern: " + desc + ". ")
	}

	writeAnalysis(&b, req.Analysis)

	b.WriteString(coreTask)
	if req.Storyline != "" {
		b.WriteString(" The lyrics should follow this narrative or storyline: " + req.Storyline + ".")
	}
	if req.Context != "" {
		b.WriteString(" Use the following existing lyrics as context or inspiration:\n---\n" + req.Context + "\n---\n")
		b.WriteString(" Either continue them seamlessly or write new lyrics inspired by them and the analysis.")
	} else {
		b.WriteString(" Generate complete lyrics.")
	}
	b.WriteString(labelInstruction)

	b.WriteString("\n\nUse the following song structure format: ")
	b.WriteString(req.StructureID.Directive())

	b.WriteString("\n\nUser Idea/Request: \"" + req.Prompt + "\"")

	b.WriteString(formattingDirective)

	return b.String()
}

// writeRoles emits the lead framing when agents is empty or names lead,
// otherwise the restricted list of known personas in input order.
// A list of only unknown ids yields an empty restricted list.
func writeRoles(b *strings.Builder, agents []model.AgentRole) {
	if len(agents) == 0 || containsLead(agents) {
		lead, _ := model.AgentLead.Description()
		b.WriteString(lead + " ")
		b.WriteString(leadBlend)
		return
	}

	b.WriteString("Embody ONLY the following selected roles: ")
	for _, a := range agents {
		if desc, ok := a.Description(); ok {
			b.WriteString("\n- " + desc)
		}
	}
	b.WriteString("\n")
}

func containsLead(agents []model.AgentRole) bool {
	for _, a := range agents {
		if a == model.AgentLead {
			return true
		}
	}
	return false
}

func writeAnalysis(b *strings.Builder, a *model.AnalysisContext) {
	if !a.Usable() {
		return
	}
	b.WriteString("\n\nThe user has provided lyrics which have been analyzed. Use these key characteristics to guide the generation or continuation:")
	if a.HasSyllables() {
		b.WriteString("\n- Syllable Pattern Per Line: [" + strings.Join(a.SyllablesPerLine, ", ") + "] (try to follow this pattern)")
	}
	if a.RhymeSchemeAnalysis != "" {
		b.WriteString("\n- Rhyme Scheme: " + a.RhymeSchemeAnalysis + " (try to follow this scheme)")
	}
	if a.RhythmAndPacing != "" {
		b.WriteString("\n- Rhythm/Pacing: " + a.RhythmAndPacing + " (match this feel)")
	}
	if a.OverallComplexity != "" {
		b.WriteString("\n- Complexity: " + a.OverallComplexity)
	}
}
