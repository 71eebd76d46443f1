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
	"path/filepath"

	"github.com/juju/errors"
	"github.com/retailrec-io/retailrec/base"
	"github.com/retailrec-io/retailrec/base/log"
	"github.com/retailrec-io/retailrec/config"
	"github.com/retailrec-io/retailrec/dataset"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var subsetsCommand = &cobra.Command{
	Use:   "generate-subsets",
	Short: "Sample customer subsets of the full dataset for fast experiments.",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		conf, err := config.LoadConfig(configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
		fraction, _ := cmd.Flags().GetFloat64("fraction")
		output, _ := cmd.Flags().GetString("output")
		if err = generateSubset(conf, fraction, output); err != nil {
			log.Logger().Fatal("failed to generate subset", zap.Error(err))
		}
	},
}

func init() {
	subsetsCommand.Flags().Float64("fraction", 0.01, "fraction of customers to sample")
	subsetsCommand.Flags().StringP("output", "o", "subset", "output directory")
}

// generateSubset samples a customer portion of the full dataset, prunes it and
// writes the subset tables plus its relevant set next to them.
func generateSubset(conf *config.Config, fraction float64, output string) error {
	if fraction <= 0 || fraction > 1 {
		return errors.Errorf("fraction must be in (0, 1]: %f", fraction)
	}
	data, err := dataset.LoadDataset(conf.Data.Dir)
	if err != nil {
		return errors.Trace(err)
	}
	rng := base.NewRandomGenerator(conf.Split.Seed)
	customerIDs := dataset.CustomerIDs(data.Transactions)
	sampled := rng.SampleStrings(customerIDs, int(fraction*float64(len(customerIDs))))
	if len(sampled) == 0 {
		return errors.New("sampled customer set is empty, increase the fraction")
	}
	subset := dataset.NewCustomerPortion(sampled).Split(data)
	log.Logger().Info("sampled subset",
		zap.Int("customers", len(subset.Customers)),
		zap.Int("items", len(subset.Items)),
		zap.Int("transactions", len(subset.Transactions)))
	if err = dataset.SaveDataset(output, subset); err != nil {
		return errors.Trace(err)
	}
	target, err := dataset.NewTarget(subset.Transactions, conf.Split.Days)
	if err != nil {
		return errors.Trace(err)
	}
	if err = dataset.SaveRelevant(filepath.Join(output, dataset.RelevantFile), target.Relevant); err != nil {
		return errors.Trace(err)
	}
	log.Logger().Info("wrote subset", zap.String("output", output))
	return nil
}
