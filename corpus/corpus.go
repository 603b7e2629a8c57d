package corpus

import (
	"bufio"
	"os"
	"strings"

	log "github.com/golang/glog"
)

// Corpus owns the vocabulary and the collection of documents trained or
// inferred against it.
type Corpus struct {
	Vocab *Vocabulary
	Docs  []*Document
}

// NewCorpus creates an empty corpus with a fresh, growable vocabulary.
func NewCorpus() *Corpus {
	return &Corpus{Vocab: NewVocabulary()}
}

// AddDocument registers the tokens with the vocabulary and appends the
// resulting document. Returns ErrAlreadyPrepared once the vocabulary
// has been finalised; documents cannot be added after that point.
func (c *Corpus) AddDocument(tokens []string) (*Document, error) {
	if c.Vocab.Prepared() {
		return nil, ErrAlreadyPrepared
	}
	raw := c.Vocab.observeDoc(tokens)
	doc := NewDocument(raw)
	c.Docs = append(c.Docs, doc)
	return doc, nil
}

// NewHeldOutDocument builds a document against the finalised
// vocabulary without touching its frequency tables, for scoring text
// the model was not trained on. Unknown tokens map to the
// out-of-vocabulary sentinel. The document is not appended to the
// corpus. Returns ErrNotPrepared before the vocabulary is finalised.
func (c *Corpus) NewHeldOutDocument(tokens []string) (*Document, error) {
	if !c.Vocab.Prepared() {
		return nil, ErrNotPrepared
	}
	doc := &Document{Words: make([]uint32, len(tokens))}
	for i, tok := range tokens {
		doc.Words[i] = c.Vocab.ID(tok)
	}
	return doc, nil
}

// Tokenize lowercases and splits s on whitespace. Callers that want
// stop-word filtering or smarter tokenisation should filter the slice
// before calling AddDocument.
func Tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// LoadLines reads one document per line from fn, tokenising with
// Tokenize, and adds each to the corpus.
func (c *Corpus) LoadLines(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		toks := Tokenize(line)
		if len(toks) == 0 {
			continue
		}
		if _, err := c.AddDocument(toks); err != nil {
			return err
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	log.Infof("loaded %d documents, %d raw tokens", n, len(c.Vocab.tokens))
	return nil
}
