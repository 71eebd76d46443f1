// Copyright 2023 retailrec Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/retailrec-io/retailrec/base"
	"github.com/retailrec-io/retailrec/base/log"
	"github.com/retailrec-io/retailrec/config"
	"github.com/retailrec-io/retailrec/dataset"
	"github.com/retailrec-io/retailrec/eval"
	"github.com/retailrec-io/retailrec/recommend"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tuneCommand = &cobra.Command{
	Use:   "tune-k",
	Short: "Score every configured cluster count on validation and test slices.",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		log.Logger().Info("load config", zap.String("config", configPath))
		conf, err := config.LoadConfig(configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
		if err = tune(conf); err != nil {
			log.Logger().Fatal("failed to tune cluster count", zap.Error(err))
		}
	},
}

func tune(conf *config.Config) error {
	start := time.Now()
	data, err := dataset.LoadDataset(conf.Data.Dir)
	if err != nil {
		return errors.Trace(err)
	}
	log.Logger().Info("loaded dataset",
		zap.Int("items", len(data.Items)),
		zap.Int("customers", len(data.Customers)),
		zap.Int("transactions", len(data.Transactions)))
	strategy, err := conf.Split.ParseStrategy()
	if err != nil {
		return errors.Trace(err)
	}
	kind, err := conf.Recommend.ParseKind()
	if err != nil {
		return errors.Trace(err)
	}
	split, err := dataset.NewSplit(data, strategy,
		dataset.WithDays(conf.Split.Days),
		dataset.WithFraction(conf.Split.Fraction),
		dataset.WithRandom(base.NewRandomGenerator(conf.Split.Seed)))
	if err != nil {
		return errors.Trace(err)
	}
	similarity := eval.GetSimilarity(conf.Eval.Similarity, data.Items)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("groups", "validation MAP", "test MAP")
	for _, groups := range conf.Recommend.Groups {
		validation, err := score(conf, kind, split, dataset.ValidationSlice, data.Items, similarity, groups)
		if err != nil {
			return errors.Trace(err)
		}
		test, err := score(conf, kind, split, dataset.TestSlice, data.Items, similarity, groups)
		if err != nil {
			return errors.Trace(err)
		}
		table.Append([]string{
			fmt.Sprintf("%v", groups),
			fmt.Sprintf("%.6f", validation),
			fmt.Sprintf("%.6f", test),
		})
	}
	table.Render()
	log.Logger().Info("tuning complete", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// score builds the configured recommender over one slice and evaluates it
// against that slice's ground truth window.
func score(conf *config.Config, kind recommend.Kind, split *dataset.Split, slice dataset.Slice,
	items []dataset.Item, similarity eval.Similarity, groups int) (float32, error) {
	engine, err := recommend.NewRecommender(kind, split, items, slice,
		groups, conf.Recommend.TotalRecommendations, conf.Recommend.Options(conf.Split.Seed)...)
	if err != nil {
		return 0, errors.Trace(err)
	}
	relevant := dataset.TargetToRelevant(split.Target(slice))
	predictions, err := engine.RecommendAll(evaluationCustomers(relevant, split.Window(slice)))
	if err != nil {
		return 0, errors.Trace(err)
	}
	result, err := eval.Score(predictions, relevant, similarity)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return result, nil
}

// evaluationCustomers keeps the ground-truth customers that also have a
// basket in the feature window, in ground-truth order. Customers without a
// basket cannot be recommended to and would only drag the mean down.
func evaluationCustomers(relevant *dataset.RelevantSet, window []dataset.Transaction) []string {
	windowCustomers := dataset.CustomerIDSet(window)
	customers := make([]string, 0, relevant.Len())
	for _, customerID := range relevant.CustomerIDs() {
		if windowCustomers.Contains(customerID) {
			customers = append(customers, customerID)
		}
	}
	return customers
}
