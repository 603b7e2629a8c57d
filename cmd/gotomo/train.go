package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/jucendrero/gotomo/corpus"
	"github.com/jucendrero/gotomo/model"
)

func trainCmd() *cli.Command {
	var (
		input      string
		output     string
		modelType  string
		termWeight string
		topicNum   int64
		alpha      float64
		eta        float64
		iter       int64
		burnIn     int64
		optimEvery int64
		minCount   int64
		removeTop  int64
		seed       int64
		workers    int64
	)

	return &cli.Command{
		Name:  "train",
		Usage: "Train a topic model on a line-per-document text file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Usage: "training file, one document per line", Required: true, Destination: &input},
			&cli.StringFlag{Name: "output", Usage: "output file prefix", Value: "gotomo", Destination: &output},
			&cli.StringFlag{Name: "model", Usage: "sampler type (lda, sparselda)", Value: "lda", Destination: &modelType},
			&cli.StringFlag{Name: "term-weight", Usage: "term weighting (uniform, idf, pmi)", Value: "uniform", Destination: &termWeight},
			&cli.IntFlag{Name: "k", Usage: "number of topics", Value: 20, Destination: &topicNum},
			&cli.FloatFlag{Name: "alpha", Usage: "document-topic concentration", Value: 0.1, Destination: &alpha},
			&cli.FloatFlag{Name: "eta", Usage: "topic-word concentration", Value: 0.01, Destination: &eta},
			&cli.IntFlag{Name: "iter", Usage: "training epochs", Value: 1000, Destination: &iter},
			&cli.IntFlag{Name: "burn-in", Usage: "epochs before alpha optimisation", Value: 0, Destination: &burnIn},
			&cli.IntFlag{Name: "optim-interval", Usage: "epochs between alpha optimisations, 0 disables", Value: 0, Destination: &optimEvery},
			&cli.IntFlag{Name: "min-count", Usage: "prune tokens seen fewer times", Value: 0, Destination: &minCount},
			&cli.IntFlag{Name: "remove-top", Usage: "prune the N most frequent tokens", Value: 0, Destination: &removeTop},
			&cli.IntFlag{Name: "seed", Usage: "random seed", Value: 42, Destination: &seed},
			&cli.IntFlag{Name: "workers", Usage: "sampler workers, 0 = all cores", Value: 0, Destination: &workers},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_ = flag.Set("logtostderr", "true")

			tw, err := model.ParseTermWeight(termWeight)
			if err != nil {
				return err
			}

			data := corpus.NewCorpus()
			if err := data.LoadLines(input); err != nil {
				return err
			}

			ctor, err := model.GetModel(modelType)
			if err != nil {
				return err
			}
			m, err := ctor(data, model.Config{
				TopicNum:      uint32(topicNum),
				Alpha:         alpha,
				Eta:           eta,
				TermWeight:    tw,
				OptimInterval: int(optimEvery),
				BurnIn:        int(burnIn),
				Seed:          seed,
				Workers:       int(workers),
				LogEvery:      10,
			})
			if err != nil {
				return err
			}

			if err := m.Prepare(uint32(minCount), int(removeTop)); err != nil {
				return err
			}
			if err := m.Train(int(iter)); err != nil {
				return err
			}

			fmt.Printf("final log-likelihood %f\n", m.LogLikelihood())
			return m.Save(output)
		},
	}
}
