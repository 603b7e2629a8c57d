package model

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jucendrero/gotomo/corpus"
	"github.com/jucendrero/gotomo/sstable"
)

// Save serialises the model under the file name prefix fn: vocabulary
// and frequency tables (.vocab), hyperparameters (.meta), per-document
// word ids, assignments and weights (.docs), and the global count
// tables (.nk, .nkv). Load restores the same layout.
func (m *LDA) Save(fn string) error {
	if !m.prepared {
		return ErrNotPrepared
	}
	if err := m.saveVocab(fn + ".vocab"); err != nil {
		return err
	}
	if err := m.saveMeta(fn + ".meta"); err != nil {
		return err
	}
	if err := m.saveDocs(fn + ".docs"); err != nil {
		return err
	}
	if err := m.global.nk.serialize(fn + ".nk"); err != nil {
		return err
	}
	return m.global.nkv.serialize(fn + ".nkv")
}

func (m *LDA) saveVocab(fn string) error {
	out, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "%d\n", m.vocabSize)
	for v := uint32(0); v < m.vocabSize; v += 1 {
		fmt.Fprintf(w, "%d,%d,%s\n",
			m.data.Vocab.DocFreq(v), m.data.Vocab.CollFreq(v), m.data.Vocab.Token(v))
	}
	return w.Flush()
}

func (m *LDA) saveMeta(fn string) error {
	out, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "k,%d\n", m.topicNum)
	fmt.Fprintf(w, "alpha0,%g\n", m.cfg.Alpha)
	fmt.Fprintf(w, "eta,%g\n", m.eta)
	fmt.Fprintf(w, "tw,%s\n", m.cfg.TermWeight)
	fmt.Fprintf(w, "epochs,%d\n", m.epochsDone)
	alphas := make([]string, len(m.alpha))
	for k, a := range m.alpha {
		alphas[k] = strconv.FormatFloat(a, 'g', -1, 64)
	}
	fmt.Fprintf(w, "alpha,%s\n", strings.Join(alphas, ","))
	return w.Flush()
}

func (m *LDA) saveDocs(fn string) error {
	out, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	for _, doc := range m.data.Docs {
		for i, v := range doc.Words {
			if i > 0 {
				w.WriteByte(' ')
			}
			if m.weighted() {
				fmt.Fprintf(w, "%d:%d:%e", v, doc.Z[i], doc.W[i])
			} else {
				fmt.Fprintf(w, "%d:%d", v, doc.Z[i])
			}
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

// Load restores a model saved by Save, replacing the receiver's corpus
// and state. The configuration stored in the files wins over the one
// the model was constructed with, except for scheduling options
// (workers, seed, intervals), which are kept.
func (m *LDA) Load(fn string) error {
	vocab, err := loadVocab(fn + ".vocab")
	if err != nil {
		return err
	}
	if err := m.loadMeta(fn + ".meta"); err != nil {
		return err
	}

	m.data = &corpus.Corpus{Vocab: vocab}
	m.vocabSize = vocab.Size()
	if m.weighted() {
		m.computeVocabWeights()
	}
	if err := m.loadDocs(fn + ".docs"); err != nil {
		return err
	}

	if m.weighted() {
		nk, err := sstable.Float32Deserialize(fn + ".nk")
		if err != nil {
			return err
		}
		nkv, err := sstable.Float32Deserialize(fn + ".nkv")
		if err != nil {
			return err
		}
		m.global = statsFromFloat(nk, nkv)
	} else {
		nk, err := sstable.Uint32Deserialize(fn + ".nk")
		if err != nil {
			return err
		}
		nkv, err := sstable.Uint32Deserialize(fn + ".nkv")
		if err != nil {
			return err
		}
		m.global = statsFromUint(nk, nkv)
	}

	m.prepared = true
	return nil
}

func loadVocab(fn string) (*corpus.Vocabulary, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return nil, fmt.Errorf("model corrupted, empty vocabulary file %s", fn)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(scanner.Text()), 10, 32)
	if err != nil {
		return nil, err
	}

	tokens := make([]string, 0, v)
	df := make([]uint32, 0, v)
	cf := make([]uint32, 0, v)
	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), ",", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("model corrupted, bad vocabulary line %q", scanner.Text())
		}
		d, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return nil, err
		}
		c, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return nil, err
		}
		df = append(df, uint32(d))
		cf = append(cf, uint32(c))
		tokens = append(tokens, parts[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if uint64(len(tokens)) != v {
		return nil, fmt.Errorf("model corrupted, vocabulary size %d != %d", len(tokens), v)
	}
	return corpus.NewPreparedVocabulary(tokens, df, cf), nil
}

func (m *LDA) loadMeta(fn string) error {
	file, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.SplitN(strings.TrimSpace(scanner.Text()), ",", 2)
		if len(parts) != 2 {
			continue
		}
		key, val := parts[0], parts[1]
		switch key {
		case "k":
			k, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				return err
			}
			m.topicNum = uint32(k)
			m.cfg.TopicNum = uint32(k)
		case "alpha0":
			a, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return err
			}
			m.cfg.Alpha = a
		case "eta":
			e, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return err
			}
			m.eta = e
			m.cfg.Eta = e
		case "tw":
			tw, err := ParseTermWeight(val)
			if err != nil {
				return err
			}
			m.cfg.TermWeight = tw
		case "epochs":
			n, err := strconv.Atoi(val)
			if err != nil {
				return err
			}
			m.epochsDone = n
		case "alpha":
			fields := strings.Split(val, ",")
			m.alpha = make([]float64, len(fields))
			for i, f := range fields {
				a, err := strconv.ParseFloat(f, 64)
				if err != nil {
					return err
				}
				m.alpha[i] = a
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if uint32(len(m.alpha)) != m.topicNum {
		return fmt.Errorf("model corrupted, alpha length %d != k %d", len(m.alpha), m.topicNum)
	}
	return nil
}

func (m *LDA) loadDocs(fn string) error {
	file, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		doc := &corpus.Document{}
		if line != "" {
			slots := strings.Fields(line)
			doc.Words = make([]uint32, len(slots))
			zs := make([]uint32, len(slots))
			var ws []float32
			if m.weighted() {
				ws = make([]float32, len(slots))
			}
			for i, slot := range slots {
				parts := strings.Split(slot, ":")
				want := 2
				if m.weighted() {
					want = 3
				}
				if len(parts) != want {
					return fmt.Errorf("model corrupted, bad token slot %q", slot)
				}
				v, err := strconv.ParseUint(parts[0], 10, 32)
				if err != nil {
					return err
				}
				z, err := strconv.ParseUint(parts[1], 10, 32)
				if err != nil {
					return err
				}
				doc.Words[i] = uint32(v)
				zs[i] = uint32(z)
				if m.weighted() {
					w, err := strconv.ParseFloat(parts[2], 32)
					if err != nil {
						return err
					}
					ws[i] = float32(w)
				}
			}
			doc.Alloc(m.topicNum, m.weighted())
			copy(doc.Z, zs)
			if m.weighted() {
				copy(doc.W, ws)
			}
			for i, v := range doc.Words {
				if v >= m.vocabSize {
					continue
				}
				doc.NDK[doc.Z[i]] += float64(doc.Weight(i))
			}
		} else {
			doc.Alloc(m.topicNum, m.weighted())
		}
		m.data.Docs = append(m.data.Docs, doc)
	}
	return scanner.Err()
}

// SavePhi serialises the topic-word posterior to fn.phi.
func (m *LDA) SavePhi(fn string) error {
	if !m.prepared {
		return ErrNotPrepared
	}
	return sstable.Float32Serialize(m.Phi(), fn+".phi")
}

// SaveTheta serialises the document-topic posterior to fn.theta.
func (m *LDA) SaveTheta(fn string) error {
	if !m.prepared {
		return ErrNotPrepared
	}
	return sstable.Float32Serialize(m.Theta(), fn+".theta")
}
