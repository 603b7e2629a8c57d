package model

import (
	"fmt"

	"github.com/jucendrero/gotomo/corpus"
)

var constructors = make(map[string]ModelCtor)

// Model is the common interface collapsed Gibbs samplers follow.
type Model interface {
	// Prepare finalises the vocabulary, computes term weights and
	// randomly assigns initial topics. minCount and removeTopN prune
	// the vocabulary before the id space is frozen.
	Prepare(minCount uint32, removeTopN int) error
	// Train runs iter epochs over the corpus.
	Train(iter int) error
	// InferTogether scores held-out documents co-sampled against a
	// shared copy of the trained state, returning a single joint
	// log-likelihood.
	InferTogether(docs []*corpus.Document, maxIter int, tolerance float64) (float64, error)
	// InferSeparate scores each held-out document independently.
	InferSeparate(docs []*corpus.Document, maxIter int, tolerance float64) ([]float64, error)
	// LogLikelihood returns the collapsed log-likelihood of the
	// current state.
	LogLikelihood() float64
	// CountByTopic returns raw per-topic token counts, ignoring term
	// weighting.
	CountByTopic() []uint32
	// TopicsByDoc returns the posterior topic mixture of a document.
	TopicsByDoc(doc *corpus.Document) []float64
	// WordsByTopic returns the posterior word distribution of topic k.
	WordsByTopic(k uint32) ([]float64, error)
	// Save serialises the model under the file name prefix fn.
	Save(fn string) error
	// Load restores the model from the file name prefix fn.
	Load(fn string) error
}

// Register makes a sampler constructor available under a model type
// name; new samplers register themselves in an init function.
func Register(modelType string, m ModelCtor) {
	constructors[modelType] = m
}

type ModelCtor func(dat *corpus.Corpus, cfg Config) (Model, error)

// GetModel looks up a registered sampler constructor.
func GetModel(modelType string) (ModelCtor, error) {
	if _, ok := constructors[modelType]; !ok {
		return nil, fmt.Errorf("model %s not registered", modelType)
	}
	return constructors[modelType], nil
}
