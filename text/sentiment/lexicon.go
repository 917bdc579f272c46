package sentiment

import mapset "github.com/deckarep/golang-set/v2"

// Lexicon holds the word sets that drive scoring.
type Lexicon struct {
	Positive     mapset.Set[string]
	Negative     mapset.Set[string]
	Intensifiers mapset.Set[string]
	Negations    mapset.Set[string]
}

// DefaultLexicon returns a fresh copy of the built-in English lexicon.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Positive: mapset.NewThreadUnsafeSet(
			"good", "great", "excellent", "amazing", "wonderful", "fantastic",
			"awesome", "brilliant", "outstanding", "superb", "perfect", "love",
			"like", "enjoy", "happy", "pleased", "satisfied", "delighted",
		),
		Negative: mapset.NewThreadUnsafeSet(
			"bad", "terrible", "awful", "horrible", "disgusting", "hate",
			"dislike", "angry", "sad", "disappointed", "frustrated", "annoyed",
			"upset", "worried", "concerned", "poor", "worst", "fail", "wrong",
		),
		Intensifiers: mapset.NewThreadUnsafeSet("very", "extremely", "really", "quite", "totally"),
		Negations:    mapset.NewThreadUnsafeSet("not", "no", "never", "nothing", "nowhere", "neither"),
	}
}
