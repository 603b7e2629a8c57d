package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/jucendrero/gotomo/corpus"
	"github.com/jucendrero/gotomo/model"
)

func inferCmd() *cli.Command {
	var (
		modelPrefix string
		input       string
		mode        string
		modelType   string
		maxIter     int64
		seed        int64
		workers     int64
	)

	return &cli.Command{
		Name:  "infer",
		Usage: "Score held-out documents against a trained model",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "model-prefix", Usage: "file prefix of a saved model", Required: true, Destination: &modelPrefix},
			&cli.StringFlag{Name: "input", Usage: "held-out file, one document per line", Required: true, Destination: &input},
			&cli.StringFlag{Name: "mode", Usage: "inference mode (separate, together)", Value: "separate", Destination: &mode},
			&cli.StringFlag{Name: "model", Usage: "sampler type (lda, sparselda)", Value: "lda", Destination: &modelType},
			&cli.IntFlag{Name: "max-iter", Usage: "sampling passes per inference", Value: 100, Destination: &maxIter},
			&cli.IntFlag{Name: "seed", Usage: "random seed", Value: 42, Destination: &seed},
			&cli.IntFlag{Name: "workers", Usage: "sampler workers, 0 = all cores", Value: 0, Destination: &workers},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_ = flag.Set("logtostderr", "true")

			ctor, err := model.GetModel(modelType)
			if err != nil {
				return err
			}
			m, err := ctor(corpus.NewCorpus(), model.Config{
				TopicNum: 1,
				Alpha:    0.1,
				Eta:      0.01,
				Seed:     seed,
				Workers:  int(workers),
			})
			if err != nil {
				return err
			}
			if err := m.Load(modelPrefix); err != nil {
				return err
			}

			docs, err := readHeldOut(m, input)
			if err != nil {
				return err
			}

			switch mode {
			case "together":
				ll, err := m.InferTogether(docs, int(maxIter), 0)
				if err != nil {
					return err
				}
				fmt.Printf("joint log-likelihood %f over %d documents\n", ll, len(docs))
			case "separate":
				lls, err := m.InferSeparate(docs, int(maxIter), 0)
				if err != nil {
					return err
				}
				for i, ll := range lls {
					fmt.Printf("doc %d log-likelihood %f\n", i, ll)
				}
			default:
				return fmt.Errorf("unknown inference mode %q", mode)
			}
			return nil
		},
	}
}

func readHeldOut(m model.Model, fn string) ([]*corpus.Document, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lda, ok := m.(interface{ Data() *corpus.Corpus })
	if !ok {
		return nil, fmt.Errorf("model does not expose its corpus")
	}

	var docs []*corpus.Document
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		doc, err := lda.Data().NewHeldOutDocument(corpus.Tokenize(line))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
