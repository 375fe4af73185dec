package enhance

import (
	"sync"
	"sync/atomic"

	"subtrans/internal/textutil"
)

// Intent names produced by the classifier.
const (
	IntentPositive      = "context.positive"
	IntentSize          = "context.size"
	IntentTemperature   = "context.temperature"
	IntentHarm          = "context.harm"
	IntentGreeting      = "expression.greeting"
	IntentAgreement     = "expression.agreement"
	IntentDisbelief     = "expression.disbelief"
	IntentEncouragement = "expression.encouragement"
	IntentUnderstanding = "expression.understanding"
	IntentFrustration   = "expression.british_frustration"
	IntentFindSecrets   = "idiom.find_secrets"
	IntentWithdraw      = "phrasal.withdraw"
)

type utterance struct {
	text   string
	intent string
}

var trainingSet = []utterance{
	{"That was great", IntentPositive},
	{"Great job", IntentPositive},
	{"You did great", IntentPositive},
	{"This is great news", IntentPositive},
	{"That's great", IntentPositive},
	{"That's cool", IntentPositive},
	{"Cool idea", IntentPositive},
	{"This is so cool", IntentPositive},

	{"A great big house", IntentSize},
	{"The great wall", IntentSize},
	{"A great distance", IntentSize},
	{"The great mountains", IntentSize},

	{"what's up", IntentGreeting},
	{"how's it going", IntentGreeting},
	{"you bet", IntentAgreement},
	{"no way", IntentDisbelief},
	{"come on", IntentEncouragement},
	{"got it", IntentUnderstanding},

	{"It's cool outside", IntentTemperature},
	{"The weather is cool", IntentTemperature},
	{"Cool breeze", IntentTemperature},

	{"bloody hell", IntentFrustration},
	{"bloody thing", IntentFrustration},
	{"bloody mess", IntentFrustration},
	{"bloody divorce", IntentFrustration},
	{"bloody idiot", IntentFrustration},

	{"dig up dirt", IntentFindSecrets},
	{"dig up information", IntentFindSecrets},
	{"find dirt on", IntentFindSecrets},
	{"get dirt on", IntentFindSecrets},
	{"have dirt on", IntentFindSecrets},

	{"back off from", IntentWithdraw},
	{"back off the case", IntentWithdraw},
	{"back away from", IntentWithdraw},
	{"back down from", IntentWithdraw},

	{"going to ruin me", IntentHarm},
	{"will ruin me", IntentHarm},
	{"destroy me", IntentHarm},
	{"finish me", IntentHarm},
}

// Classification is the best intent for a piece of text. Score is the cosine
// similarity to the nearest training utterance, in [0, 1].
type Classification struct {
	Intent string  `json:"intent"`
	Score  float64 `json:"score"`
}

type trainedUtterance struct {
	intent string
	fp     *textutil.Fingerprint
}

// Classifier is a nearest-utterance intent model over TF-IDF fingerprints.
// It trains once on first use and is safe for concurrent use afterwards.
type Classifier struct {
	once    sync.Once
	ready   atomic.Bool
	idf     map[string]float64
	trained []trainedUtterance
}

var shared = &Classifier{}

// SharedClassifier returns the process-wide classifier.
func SharedClassifier() *Classifier {
	return shared
}

// Warm trains the model if it has not been trained yet.
func (c *Classifier) Warm() {
	c.once.Do(c.train)
}

// Ready reports whether training has completed.
func (c *Classifier) Ready() bool {
	return c.ready.Load()
}

func (c *Classifier) train() {
	corpus := textutil.NewCorpus()
	raw := make([]*textutil.Fingerprint, len(trainingSet))
	for i, u := range trainingSet {
		raw[i] = textutil.NewFingerprint(expandContractions(u.text))
		corpus.Add(raw[i])
	}
	c.idf = corpus.IDF()
	c.trained = make([]trainedUtterance, 0, len(trainingSet))
	for i, u := range trainingSet {
		if fp := raw[i].WithIDF(c.idf); fp != nil {
			c.trained = append(c.trained, trainedUtterance{intent: u.intent, fp: fp})
		}
	}
	c.ready.Store(true)
}

// Classify returns the intent of the nearest training utterance. Text with no
// usable tokens yields an empty intent and a zero score. Ties keep the
// earliest utterance.
func (c *Classifier) Classify(text string) Classification {
	c.Warm()
	query := textutil.NewFingerprint(expandContractions(text)).WithIDF(c.idf)
	if query == nil {
		return Classification{}
	}
	var best Classification
	for _, u := range c.trained {
		if score := textutil.CosineSimilarity(query, u.fp); score > best.Score {
			best = Classification{Intent: u.intent, Score: score}
		}
	}
	return best
}
