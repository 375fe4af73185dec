package textutil

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokens shorter than this many runes are ignored.
const minTokenRunes = 2

// Fingerprint is a weighted bag of words with a cached Euclidean norm.
type Fingerprint struct {
	weights map[string]float64
	norm    float64
}

func fromWeights(weights map[string]float64) *Fingerprint {
	if len(weights) == 0 {
		return nil
	}
	var sum float64
	for _, w := range weights {
		sum += w * w
	}
	return &Fingerprint{weights: weights, norm: math.Sqrt(sum)}
}

// NewFingerprint counts the terms of text. It returns nil when text has no
// usable tokens.
func NewFingerprint(text string) *Fingerprint {
	counts := make(map[string]float64)
	for _, token := range Tokenize(text) {
		counts[token]++
	}
	return fromWeights(counts)
}

// Tokenize lowercases text and splits it on anything that is not a letter or
// digit, dropping one-rune fragments.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, field := range fields {
		if utf8.RuneCountInString(field) >= minTokenRunes {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// Terms returns the number of distinct terms.
func (f *Fingerprint) Terms() int {
	if f == nil {
		return 0
	}
	return len(f.weights)
}

// Has reports whether token occurs in the fingerprint.
func (f *Fingerprint) Has(token string) bool {
	if f == nil {
		return false
	}
	_, ok := f.weights[token]
	return ok
}

// WithIDF scales each term by its idf weight; terms missing from idf keep
// their count. Zero-weight terms are dropped, and nil is returned if none
// remain.
func (f *Fingerprint) WithIDF(idf map[string]float64) *Fingerprint {
	if f == nil || len(idf) == 0 {
		return f
	}
	scaled := make(map[string]float64, len(f.weights))
	for token, w := range f.weights {
		if factor, ok := idf[token]; ok {
			w *= factor
		}
		if w != 0 {
			scaled[token] = w
		}
	}
	return fromWeights(scaled)
}

// Corpus tracks document frequencies for IDF weighting.
type Corpus struct {
	docs int
	df   map[string]int
}

func NewCorpus() *Corpus {
	return &Corpus{df: make(map[string]int)}
}

// Add counts each distinct term of fp once.
func (c *Corpus) Add(fp *Fingerprint) {
	if c == nil || fp == nil {
		return
	}
	c.docs++
	for token := range fp.weights {
		c.df[token]++
	}
}

// Len returns the number of documents added.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return c.docs
}

// IDF returns smoothed weights ln((N+1)/(1+df)) + 1, so a term present in
// every document still weighs 1.
func (c *Corpus) IDF() map[string]float64 {
	if c.Len() == 0 {
		return nil
	}
	n := float64(c.docs)
	idf := make(map[string]float64, len(c.df))
	for term, df := range c.df {
		idf[term] = math.Log((n+1)/(1+float64(df))) + 1
	}
	return idf
}
