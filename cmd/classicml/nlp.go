package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/YuminosukeSato/classicml/pkg/errors"
	"github.com/YuminosukeSato/classicml/text"
	"github.com/YuminosukeSato/classicml/text/naivebayes"
	"github.com/YuminosukeSato/classicml/text/sentiment"
	"github.com/YuminosukeSato/classicml/text/similarity"
	"github.com/YuminosukeSato/classicml/text/tfidf"
)

var (
	corpus = []string{
		"I love this product! It's absolutely amazing and works perfectly.",
		"This is terrible. I hate it and want my money back.",
		"The service was okay, nothing special but not bad either.",
		"Machine learning is a fascinating field of artificial intelligence.",
		"Natural language processing helps computers understand human language.",
	}
	corpusLabels = []string{"positive", "negative", "neutral", "technical", "technical"}

	queries = []string{
		"This product is really good and I'm happy with it",
		"machine learning language",
	}

	sentimentSamples = []string{
		"I really love this amazing product",
		"This is not good at all",
		"The weather is cloudy today",
	}
)

func runNLP(w io.Writer, opts *options) (err error) {
	defer errors.Recover(&err, "demo nlp")

	out := artifacts{saveDir: opts.saveDir}
	if err := out.prepare(); err != nil {
		return err
	}
	pre := text.NewPreprocessor()

	fmt.Fprintln(w, "1. Text Preprocessing")
	fmt.Fprintf(w, "   original: %s\n", corpus[0])
	fmt.Fprintf(w, "   cleaned:  %s\n", text.CleanText(corpus[0]))
	tokens := pre.Pipeline(corpus[0])
	fmt.Fprintf(w, "   tokens:   %v\n", tokens)
	bigrams := lo.Map(text.Bigrams(tokens), func(g []string, _ int) string { return strings.Join(g, " ") })
	fmt.Fprintf(w, "   bigrams:  %v\n", bigrams)

	fmt.Fprintln(w, "2. Naive Bayes")
	nb := naivebayes.New(naivebayes.WithPreprocessor(pre))
	if err := nb.Train(corpus, corpusLabels); err != nil {
		return err
	}
	fmt.Fprintf(w, "   classes=%v vocabulary=%d\n", nb.Classes(), len(nb.Vocabulary()))
	for _, q := range queries {
		label, err := nb.Predict(q)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "   %q -> %s\n", q, label)
	}
	if err := out.save("naive_bayes", nb); err != nil {
		return err
	}

	fmt.Fprintln(w, "3. TF-IDF")
	vec := tfidf.New(tfidf.WithPreprocessor(pre))
	matrix, err := vec.FitTransform(corpus)
	if err != nil {
		return err
	}
	rows, cols := matrix.Dims()
	fmt.Fprintf(w, "   matrix shape: %dx%d\n", rows, cols)
	names := vec.FeatureNames()
	fmt.Fprintf(w, "   first features: %v\n", names[:min(5, len(names))])
	if err := out.save("tfidf", vec); err != nil {
		return err
	}

	fmt.Fprintln(w, "4. Sentiment")
	analyzer := sentiment.NewAnalyzer()
	for _, s := range sentimentSamples {
		r := analyzer.Analyze(s)
		fmt.Fprintf(w, "   %q -> %s (confidence=%.2f)\n", s, r.Sentiment, r.Confidence)
	}

	fmt.Fprintln(w, "5. Similarity")
	a, b := corpus[3], corpus[4]
	fmt.Fprintf(w, "   jaccard(3, 4) = %.3f\n", similarity.Jaccard(pre, a, b))
	cos, err := similarity.TFIDFCosine(vec, a, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "   tfidf cosine(3, 4) = %.3f\n", cos)
	return nil
}
