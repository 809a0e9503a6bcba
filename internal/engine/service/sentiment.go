package service

import "strings"

// Small polarity lexicons for the lexical sentiment estimate. The estimate
// only needs to separate net-positive from net-negative text for the
// engagement increment and story enrichment, not grade nuance.
var positiveWords = map[string]struct{}{
	"growth": {}, "success": {}, "win": {}, "innovative": {}, "strong": {},
	"record": {}, "profit": {}, "breakthrough": {}, "leading": {}, "best": {},
	"great": {}, "excellent": {}, "improve": {}, "improved": {}, "gain": {},
	"launch": {}, "launched": {}, "expansion": {}, "milestone": {}, "achieved": {},
	"opportunity": {}, "efficient": {}, "positive": {}, "boost": {}, "thrive": {},
}

var negativeWords = map[string]struct{}{
	"loss": {}, "decline": {}, "fail": {}, "failed": {}, "failure": {},
	"weak": {}, "drop": {}, "layoff": {}, "layoffs": {}, "lawsuit": {},
	"crisis": {}, "debt": {}, "bankruptcy": {}, "fraud": {}, "negative": {},
	"problem": {}, "struggle": {}, "shrink": {}, "cut": {}, "risk": {},
	"downturn": {}, "scandal": {}, "recall": {}, "breach": {}, "shutdown": {},
}

// EstimateSentiment returns a lexical polarity estimate in [-1, 1].
// Text with no polar words scores 0.
func EstimateSentiment(text string) float64 {
	var pos, neg int
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,:;!?\"'()[]#")
		if _, ok := positiveWords[word]; ok {
			pos++
		}
		if _, ok := negativeWords[word]; ok {
			neg++
		}
	}
	if pos+neg == 0 {
		return 0
	}
	return float64(pos-neg) / float64(pos+neg)
}
