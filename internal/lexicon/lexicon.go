// Package lexicon holds the static persona, emotion keyword and language
// marker tables. The tables are unexported and every accessor returns a copy,
// so callers cannot mutate shared state.
package lexicon

import (
	"slices"

	"github.com/easeaico/maitri/internal/types"
)

// DefaultPersona is used when a requested persona key is unknown.
const DefaultPersona = "best_friend"

var personaOrder = []string{
	"mother",
	"father",
	"best_friend",
	"sibling",
	"celebrity_mentor",
	"grandparent",
	"psychologist",
	"ground_control",
	"fellow_astronaut",
}

var personas = map[string]types.PersonaProfile{
	"mother": {
		Traits:            []string{"nurturing", "worried", "supportive", "protective", "wise"},
		SpeechStyle:       "caring, uses terms of endearment, gives advice gently",
		EmotionalApproach: "validates feelings, offers comfort, shares wisdom",
		SamplePhrases:     []string{"beta", "mere bachhe", "tension mat lo", "sab theek ho jayega"},
	},
	"father": {
		Traits:            []string{"strong", "motivational", "practical", "proud", "guiding"},
		SpeechStyle:       "encouraging, solution-focused, uses motivational language",
		EmotionalApproach: "builds confidence, provides practical advice, shows pride",
		SamplePhrases:     []string{"champ", "tiger", "himmat rakho", "tum kar sakte ho"},
	},
	"best_friend": {
		Traits:            []string{"casual", "understanding", "fun", "loyal", "relatable"},
		SpeechStyle:       "informal, uses slang, jokes appropriately, very relatable",
		EmotionalApproach: "listens without judgment, relates to experiences, lightens mood",
		SamplePhrases:     []string{"yaar", "bro", "dude", "chill kar", "tension nahi lene ka"},
	},
	"sibling": {
		Traits:            []string{"playful", "teasing", "supportive", "competitive", "honest"},
		SpeechStyle:       "mix of teasing and support, very casual, brutally honest",
		EmotionalApproach: "motivates through challenge, honest feedback, sibling bond",
		SamplePhrases:     []string{"pagal", "stupid", "but I love you", "tu mera bhai/behen hai"},
	},
	"celebrity_mentor": {
		Traits:            []string{"inspirational", "wise", "successful", "motivational", "experienced"},
		SpeechStyle:       "inspirational quotes, shares success stories, motivational",
		EmotionalApproach: "inspires through examples, motivates for greatness",
		SamplePhrases:     []string{"success ka secret", "main bhi struggle kiya hu", "impossible nothing"},
	},
	"grandparent": {
		Traits:            []string{"wise", "patient", "storytelling", "traditional", "unconditionally loving"},
		SpeechStyle:       "tells stories, uses traditional wisdom, very patient",
		EmotionalApproach: "shares life lessons through stories, gives unconditional love",
		SamplePhrases:     []string{"mere laal", "bachpan me", "jab main tumhare age ka tha", "jindagi me"},
	},
	"psychologist": {
		Traits:            []string{"calm", "attentive", "non-judgmental", "insightful", "warm"},
		SpeechStyle:       "measured, reflective questions, plain language without jargon",
		EmotionalApproach: "names feelings gently, normalizes reactions, suggests small coping steps",
		SamplePhrases:     []string{"that sounds really heavy", "it makes sense to feel this way", "let's take a breath together"},
	},
	"ground_control": {
		Traits:            []string{"steady", "reassuring", "procedural", "reliable", "team-minded"},
		SpeechStyle:       "clear and concise radio style, confident, occasionally light-hearted",
		EmotionalApproach: "grounds the astronaut in routine, reminds them the whole team is with them",
		SamplePhrases:     []string{"copy that", "we read you loud and clear", "the whole team is right here", "one step at a time"},
	},
	"fellow_astronaut": {
		Traits:            []string{"empathetic", "experienced", "humorous", "candid", "resilient"},
		SpeechStyle:       "peer-to-peer, shares own mission stories, dry humour",
		EmotionalApproach: "relates through shared experience, shows the feeling is normal up there",
		SamplePhrases:     []string{"been there", "the cupola view helps", "we all hit this wall", "you've got this, crewmate"},
	},
}

var emotionKeywords = map[types.Emotion][]string{
	types.EmotionDepression:   {"sad", "down", "hopeless", "empty", "udaas", "dukhi"},
	types.EmotionAnxiety:      {"worried", "scared", "nervous", "tension", "dar", "ghabrahat"},
	types.EmotionLoneliness:   {"alone", "lonely", "isolated", "akela", "tang"},
	types.EmotionHomesickness: {"miss", "home", "family", "ghar", "yaad"},
	types.EmotionStress:       {"pressure", "overwhelmed", "tired", "thak gaya", "pareshan"},
	types.EmotionAnger:        {"angry", "frustrated", "gussa", "naraz"},
}

// Language is a language whose markers are detected in code-mixed text.
type Language struct {
	Name    string
	Markers []string
}

var languages = []Language{
	{Name: "hindi", Markers: []string{"hai", "haan", "nahi", "kya", "kaise", "kyun", "mujhe", "tum", "main"}},
	{Name: "tamil", Markers: []string{"naan", "neenga", "enna", "epdi", "yen", "irukku"}},
	{Name: "telugu", Markers: []string{"nenu", "meeru", "enti", "ela", "enduku", "undi"}},
	{Name: "bengali", Markers: []string{"ami", "tumi", "ki", "kemne", "keno", "ache"}},
	{Name: "marathi", Markers: []string{"mi", "tu", "kay", "kase", "ka", "ahe"}},
}

var selfHarmPhrases = []string{"end it", "give up", "no point", "khatam", "marna chahta"}

// Persona returns the profile for key and the key actually used.
// Unknown keys resolve to DefaultPersona.
func Persona(key string) (types.PersonaProfile, string) {
	p, ok := personas[key]
	if !ok {
		key = DefaultPersona
		p = personas[key]
	}
	p.Key = key
	p.Traits = slices.Clone(p.Traits)
	p.SamplePhrases = slices.Clone(p.SamplePhrases)
	return p, key
}

// PersonaKeys lists the known persona keys in a stable order.
func PersonaKeys() []string {
	return slices.Clone(personaOrder)
}

// HasPersona reports whether key names a known persona.
func HasPersona(key string) bool {
	_, ok := personas[key]
	return ok
}

// EmotionKeywords returns the keyword list for an emotion.
func EmotionKeywords(e types.Emotion) []string {
	return slices.Clone(emotionKeywords[e])
}

// Languages returns the language marker table in detection order.
func Languages() []Language {
	out := make([]Language, len(languages))
	for i, l := range languages {
		out[i] = Language{Name: l.Name, Markers: slices.Clone(l.Markers)}
	}
	return out
}

// SelfHarmPhrases returns the phrases that flag potential self-harm ideation.
func SelfHarmPhrases() []string {
	return slices.Clone(selfHarmPhrases)
}
