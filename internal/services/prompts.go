package services

import "fmt"

// Prompt composers. Pure string templating: any input, including the
// empty string, still yields a usable instruction.

// ComposeConceptPrompt wraps the user's phrase in the two-step
// find-the-moment / visualize-one-detail instruction.
func ComposeConceptPrompt(userPrompt string) string {
	return fmt.Sprintf(`Transform this into a hilarious, relatable image concept: "%s".

STEP 1: Find the core human experience
- What specific moment/situation does this describe?
- When do people actually experience this feeling?
- What's the social/emotional dynamic?

STEP 2: Visualize the perfect comedic moment
- Show someone LIVING this experience
- Add ONE perfect exaggerated detail (facial expression, body language, contrast)
- Focus on human reactions and emotions

EXAMPLES OF GOOD TRANSFORMATION:
BAD: "Math is a superpower" -> literal superhero with calculator
GOOD: "Math is a superpower" -> person confidently calculating tip while friends panic with phone calculators

BAD: "Monday morning" -> generic tired face
GOOD: "Monday morning" -> person trying to put cereal in coffee maker

COMEDY RULES:
- Show the MOMENT, not the concept
- One perfect detail beats chaos
- Focus on expressions and body language
- Make it instantly relatable
- Ask: "Would I tag a friend in this?"

Transform "%s" into one specific, relatable moment with perfect comedic timing:`, userPrompt, userPrompt)
}

// ComposeEnhancementPrompt asks for subtle contemporary framing tied
// to a trend without touching the underlying joke.
func ComposeEnhancementPrompt(concept, trendTopic, trendDescription string) string {
	return fmt.Sprintf(`Enhance this funny concept with subtle cultural timing inspired by current trends:

FUNNY CONCEPT: "%s"
CURRENT VIBE: %s - %s

ENHANCEMENT MECHANICS:
- Keep the original visual punchline intact
- Add subtle contemporary emotional layers
- Make expressions feel culturally current
- Update context without changing the core joke

DO NOT add literal trend references or text.
DO NOT change the fundamental comedy concept.

Enhanced concept (same joke, more culturally resonant timing):`, concept, trendTopic, trendDescription)
}

// ComposeImagePrompt appends the fixed style suffix to the concept.
func ComposeImagePrompt(enhancedConcept string) string {
	return enhancedConcept + ", cartoon style, funny, comedic, family-friendly, high quality, detailed, vibrant colors"
}

// ComposeCaptionPrompt asks for a short shareable caption.
func ComposeCaptionPrompt(userPrompt, enhancedConcept string) string {
	return fmt.Sprintf(`Create a punchy, shareable description for this funny image based on: "%s".

CONCEPT: "%s"

EXAMPLES OF GREAT DESCRIPTIONS:
- "When you're trying to adult but have no idea what you're doing 😅🤷‍♀️"
- "This is me every Monday morning ☕😴"
- "POV: You thought you had your life together 💀"

PRINCIPLES:
- Relatable "this is me" moments
- Perfect emoji usage (2-3 max)
- Makes people think "OMG same"
- Maximum 2-3 sentences

Focus on the MAIN funny feeling this image captures:

Description:`, userPrompt, enhancedConcept)
}
