// Package naivebayes implements a multinomial Naive Bayes text classifier
// with add-one (Laplace) smoothing.
package naivebayes

import (
	"math"
	"slices"

	"github.com/goccy/go-json"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"

	"github.com/YuminosukeSato/classicml/core/model"
	"github.com/YuminosukeSato/classicml/pkg/errors"
	"github.com/YuminosukeSato/classicml/pkg/log"
	"github.com/YuminosukeSato/classicml/text"
)

const modelName = "NaiveBayes"

var _ model.TextClassifier = (*Classifier)(nil)

// Option configures a Classifier.
type Option func(*Classifier)

// WithPreprocessor replaces the default preprocessor.
func WithPreprocessor(p *text.Preprocessor) Option {
	return func(c *Classifier) {
		c.preprocessor = p
	}
}

// Classifier holds class priors and smoothed per-class word probabilities.
// All fitted state is derived once by Train and read-only afterwards.
type Classifier struct {
	model.BaseEstimator

	ClassList  []string                      `json:"classes"`
	Priors     map[string]float64            `json:"class_priors"`
	WordProbs  map[string]map[string]float64 `json:"word_probabilities"`
	VocabWords []string                      `json:"vocabulary"`

	preprocessor *text.Preprocessor
	vocabulary   mapset.Set[string]
}

// New creates an untrained classifier.
func New(opts ...Option) *Classifier {
	c := &Classifier{preprocessor: text.NewPreprocessor()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Kind implements model.Estimator.
func (c *Classifier) Kind() model.Kind { return model.KindTextClassification }

// Train fits the classifier on documents[i] labelled labels[i].
//
// P(class) = docs_in_class / docs and
// P(word|class) = (count(word, class) + 1) / (words_in_class + |vocabulary|)
// for every vocabulary word, so no word ever has zero probability.
func (c *Classifier) Train(documents []string, labels []string) error {
	if len(documents) == 0 {
		return errors.NewModelError("NaiveBayes.Train", "empty data", errors.ErrEmptyData)
	}
	if len(labels) != len(documents) {
		return errors.NewDimensionError("NaiveBayes.Train", len(documents), len(labels), 0)
	}

	c.Reset()
	classCounts := lo.CountValues(labels)
	wordCounts := make(map[string]map[string]int, len(classCounts))
	vocabulary := mapset.NewThreadUnsafeSet[string]()

	for i, doc := range documents {
		counts, ok := wordCounts[labels[i]]
		if !ok {
			counts = make(map[string]int)
			wordCounts[labels[i]] = counts
		}
		for _, token := range c.preprocessor.Pipeline(doc) {
			vocabulary.Add(token)
			counts[token]++
		}
	}

	c.ClassList = lo.Keys(classCounts)
	slices.Sort(c.ClassList)
	c.VocabWords = vocabulary.ToSlice()
	slices.Sort(c.VocabWords)
	c.vocabulary = vocabulary

	total := float64(len(documents))
	vocabSize := float64(vocabulary.Cardinality())
	c.Priors = make(map[string]float64, len(c.ClassList))
	c.WordProbs = make(map[string]map[string]float64, len(c.ClassList))
	for _, class := range c.ClassList {
		c.Priors[class] = float64(classCounts[class]) / total

		totalWords := float64(lo.Sum(lo.Values(wordCounts[class])))
		probs := make(map[string]float64, len(c.VocabWords))
		for _, word := range c.VocabWords {
			probs[word] = (float64(wordCounts[class][word]) + 1) / (totalWords + vocabSize)
		}
		c.WordProbs[class] = probs
	}
	c.SetFitted()

	log.GetLoggerWithName("naivebayes").With(
		log.ModelNameKey, modelName,
		log.EstimatorIDKey, c.ID(),
	).Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(documents),
		log.ClassesKey, len(c.ClassList),
		log.VocabSizeKey, len(c.VocabWords),
	)
	return nil
}

// UnmarshalJSON replaces all fitted state with the snapshot and rebuilds the
// vocabulary set. The preprocessor is kept.
func (c *Classifier) UnmarshalJSON(data []byte) error {
	type snapshot Classifier
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	c.BaseEstimator = s.BaseEstimator
	c.ClassList = s.ClassList
	c.Priors = s.Priors
	c.WordProbs = s.WordProbs
	c.VocabWords = s.VocabWords
	c.vocabulary = mapset.NewThreadUnsafeSet(s.VocabWords...)
	return nil
}

// PredictLogScores returns log P(class) + Σ log P(token|class) for every class.
// Tokens outside the vocabulary add log(1/(|vocabulary|+1)).
func (c *Classifier) PredictLogScores(doc string) (map[string]float64, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, "PredictLogScores")
	}

	tokens := c.preprocessor.Pipeline(doc)
	unseen := math.Log(1 / float64(len(c.VocabWords)+1))

	scores := make(map[string]float64, len(c.ClassList))
	for _, class := range c.ClassList {
		score := math.Log(c.Priors[class])
		for _, token := range tokens {
			if c.vocabulary.Contains(token) {
				score += math.Log(c.WordProbs[class][token])
			} else {
				score += unseen
			}
		}
		scores[class] = score
	}
	return scores, nil
}

// Predict returns the class with the highest log score. Equal scores resolve
// to the lexicographically smallest class.
func (c *Classifier) Predict(doc string) (string, error) {
	scores, err := c.PredictLogScores(doc)
	if err != nil {
		return "", err
	}

	best := c.ClassList[0]
	for _, class := range c.ClassList[1:] {
		if scores[class] > scores[best] {
			best = class
		}
	}
	return best, nil
}

// Classes returns the training classes in sorted order.
func (c *Classifier) Classes() []string {
	return slices.Clone(c.ClassList)
}

// Vocabulary returns the sorted training vocabulary.
func (c *Classifier) Vocabulary() []string {
	return slices.Clone(c.VocabWords)
}

// ClassPrior returns P(class).
func (c *Classifier) ClassPrior(class string) (float64, bool) {
	p, ok := c.Priors[class]
	return p, ok
}

// WordProbability returns the smoothed P(word|class) for a vocabulary word.
func (c *Classifier) WordProbability(class, word string) (float64, bool) {
	p, ok := c.WordProbs[class][word]
	return p, ok
}
