package model

// AgentRole identifies a writing persona the generator can adopt.
type AgentRole string

const (
	AgentLead       AgentRole = "lead"
	AgentPoet       AgentRole = "poet"
	AgentMood       AgentRole = "mood"
	AgentPop        AgentRole = "pop"
	AgentAnalogy    AgentRole = "analogy"
	AgentPhilosophy AgentRole = "philosophy"
	AgentEras       AgentRole = "eras"
	AgentGenre      AgentRole = "genre"
)

var ValidAgentRoles = []AgentRole{
	AgentLead, AgentPoet, AgentMood, AgentPop,
	AgentAnalogy, AgentPhilosophy, AgentEras, AgentGenre,
}

// Description returns the persona sentence for a known role.
func (a AgentRole) Description() (string, bool) {
	switch a {
	case AgentLead:
		return "Act as the Lead Writer, supervising and integrating various styles. Ensure a cohesive final output.", true
	case AgentPoet:
		return "Emphasize strong metaphors, wordplay, and evocative imagery like a Literary Poet.", true
	case AgentMood:
		return "Focus intensely on capturing the specified mood.", true
	case AgentPop:
		return "Incorporate relevant modern slang, pop culture references, and trends.", true
	case AgentAnalogy:
		return "Weave in clever analogies, common sayings, or idioms naturally.", true
	case AgentPhilosophy:
		return "Add depth with philosophical or psychological insights.", true
	case AgentEras:
		return "Write in a style reminiscent of a specific musical era.", true
	case AgentGenre:
		return "Adhere closely to the conventions of a specific genre.", true
	}
	return "", false
}

// SongStructure identifies a target song form.
type SongStructure string

const (
	StructureVerseChorus          SongStructure = "verse-chorus"
	StructureVerseChorusBridge    SongStructure = "verse-chorus-bridge"
	StructureVersePrechorusChorus SongStructure = "verse-prechorus-chorus"
	StructureStrophic             SongStructure = "strophic"
	StructureAABA                 SongStructure = "aaba"
	Structure12BarBlues           SongStructure = "12-bar-blues"
	StructurePopStandard          SongStructure = "pop-standard"
	StructurePopModern            SongStructure = "pop-modern"
	StructurePopChorusFirst       SongStructure = "pop-chorus-first"
	StructureRockStandardSolo     SongStructure = "rock-standard-solo"
	StructureHipHopStandard       SongStructure = "hiphop-standard"
	StructureHipHopHookEmphasis   SongStructure = "hiphop-hook-emphasis"
	StructureThroughComposed      SongStructure = "through-composed"
	StructureCustom               SongStructure = "custom"
)

var ValidSongStructures = []SongStructure{
	StructureVerseChorus, StructureVerseChorusBridge, StructureVersePrechorusChorus,
	StructureStrophic, StructureAABA, Structure12BarBlues,
	StructurePopStandard, StructurePopModern, StructurePopChorusFirst,
	StructureRockStandardSolo, StructureHipHopStandard, StructureHipHopHookEmphasis,
	StructureThroughComposed, StructureCustom,
}

// StructureAIDecides is used for custom and unrecognized structures.
const StructureAIDecides = "AI Decides Best. Analyze the user's idea, genre, mood, and era, then choose the most appropriate and effective song structure. Ensure it includes at least a verse and a chorus or hook."

// Directive returns the structure instruction for s.
func (s SongStructure) Directive() string {
	switch s {
	case StructureVerseChorus:
		return "Standard Verse-Chorus (e.g., Verse 1, Chorus, Verse 2, Chorus). Include at least 2 verses."
	case StructureVerseChorusBridge:
		return "Verse-Chorus-Bridge (e.g., Verse 1, Chorus, Verse 2, Chorus, Bridge, Chorus). Include at least 2 verses."
	case StructureVersePrechorusChorus:
		return "Verse-PreChorus-Chorus (e.g., Verse 1, Pre-Chorus, Chorus, Verse 2, Pre-Chorus, Chorus). Include at least 2 verses."
	case StructureStrophic:
		return "Strophic (Verse Repeating, AAA...). Write several verses (at least 3) with the same melody but different lyrics. No distinct chorus section."
	case StructureAABA:
		return "AABA (32-Bar Form). Structure it as A section (8 bars), A section (8 bars, different lyrics), B section/Bridge (8 bars, contrasting), A section (8 bars, return to main theme)."
	case Structure12BarBlues:
		return "12-Bar Blues. Follow the standard 12-bar blues progression and AAB lyrical pattern if appropriate for the idea."
	case StructurePopStandard:
		return "Standard Pop (VCVCBC - Verse, Chorus, Verse, Chorus, Bridge, Chorus)."
	case StructurePopModern:
		return "Modern Pop Formula (Intro, Verse, Pre-Chorus, Chorus, Verse, Pre-Chorus, Chorus, Bridge, Chorus, Outro). Ensure a catchy hook in the chorus and pre-chorus."
	case StructurePopChorusFirst:
		return "Chorus First Pop. Start the song directly with the [Chorus] section for immediate impact, then proceed with verses, etc."
	case StructureRockStandardSolo:
		return "Standard Rock with Solo (e.g., Intro, Verse, Chorus, Verse, Chorus, Bridge, Guitar Solo, Chorus, Outro)."
	case StructureHipHopStandard:
		return "Standard Hip-Hop (e.g., Intro, Verse 1, Chorus/Hook, Verse 2, Chorus/Hook, Bridge, Verse 3, Chorus/Hook, Outro). Use 16-bar verses typically."
	case StructureHipHopHookEmphasis:
		return "Hip-Hop Hook Emphasis (e.g., Hook, Verse 1, Hook, Verse 2, Hook, Bridge, Hook). Focus on a repetitive, catchy hook."
	case StructureThroughComposed:
		return "Through-Composed. Do not repeat any major sections. Develop the music and lyrics continuously to follow the narrative or idea."
	case StructureCustom:
		return StructureAIDecides
	}
	return StructureAIDecides
}

// FlowPattern identifies a rhythmic delivery style.
type FlowPattern string

const (
	FlowStandard     FlowPattern = "standard"
	FlowTriplet      FlowPattern = "triplet"
	FlowDoubleTime   FlowPattern = "double-time"
	FlowChoppy       FlowPattern = "choppy"
	FlowMelodic      FlowPattern = "melodic"
	FlowSyncopated   FlowPattern = "syncopated"
	FlowPercussive   FlowPattern = "percussive"
	FlowLaidBack     FlowPattern = "laid-back"
	FlowPushAhead    FlowPattern = "push-ahead"
	FlowCallResponse FlowPattern = "call-response"
)

var ValidFlowPatterns = []FlowPattern{
	FlowStandard, FlowTriplet, FlowDoubleTime, FlowChoppy, FlowMelodic,
	FlowSyncopated, FlowPercussive, FlowLaidBack, FlowPushAhead, FlowCallResponse,
}

// Description returns the delivery description for a known pattern.
func (f FlowPattern) Description() (string, bool) {
	switch f {
	case FlowStandard:
		return "Regular rhythm with evenly spaced syllables", true
	case FlowTriplet:
		return "Three syllables in the space of two beats (like Migos)", true
	case FlowDoubleTime:
		return "Twice as many syllables per beat, creating a fast-paced delivery", true
	case FlowChoppy:
		return "Staccato delivery with deliberate pauses between words or phrases", true
	case FlowMelodic:
		return "Singing-rapping hybrid with pitch variation and melodic elements", true
	case FlowSyncopated:
		return "Emphasis on off-beats, creating a bouncy, unpredictable rhythm", true
	case FlowPercussive:
		return "Using words as percussion instruments, emphasizing consonant sounds", true
	case FlowLaidBack:
		return "Slightly behind the beat, creating a relaxed, effortless feel", true
	case FlowPushAhead:
		return "Slightly ahead of the beat, creating an urgent, energetic feel", true
	case FlowCallResponse:
		return "Question-answer pattern, often with contrasting delivery styles", true
	}
	return "", false
}

// ChatRole is the speaker of a chat turn.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)
