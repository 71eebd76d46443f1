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

// Package config loads experiment configuration from TOML files.
package config

import (
	"github.com/juju/errors"
	"github.com/retailrec-io/retailrec/base"
	"github.com/retailrec-io/retailrec/dataset"
	"github.com/retailrec-io/retailrec/recommend"
	"github.com/spf13/viper"
)

// Config is the configuration of an experiment run.
type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Split     SplitConfig     `mapstructure:"split"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	Eval      EvalConfig      `mapstructure:"eval"`
}

type DataConfig struct {
	// Dir holds articles.csv, customers.csv and transactions.csv.
	Dir string `mapstructure:"dir"`
}

type SplitConfig struct {
	Strategy string  `mapstructure:"strategy"`
	Days     int     `mapstructure:"days"`
	Fraction float64 `mapstructure:"fraction"`
	Seed     int64   `mapstructure:"seed"`
}

type RecommendConfig struct {
	Kind                 string `mapstructure:"kind"`
	Groups               []int  `mapstructure:"groups"`
	TotalRecommendations int    `mapstructure:"total_recommendations"`
	Threshold            int    `mapstructure:"threshold"`
	MinCatalog           int    `mapstructure:"min_catalog"`
	DropDuplicates       bool   `mapstructure:"drop_duplicates"`
}

type EvalConfig struct {
	Similarity string `mapstructure:"similarity"`
}

func setDefault() {
	viper.SetDefault("data.dir", "data")
	viper.SetDefault("split.strategy", "three_sets")
	viper.SetDefault("split.days", dataset.DefaultTargetWindowDays)
	viper.SetDefault("split.fraction", 0.2)
	viper.SetDefault("split.seed", base.DefaultSeed)
	viper.SetDefault("recommend.kind", "knn")
	viper.SetDefault("recommend.groups", []int{2, 4, 6})
	viper.SetDefault("recommend.total_recommendations", 12)
	viper.SetDefault("recommend.threshold", 0)
	viper.SetDefault("recommend.min_catalog", recommend.DefaultMinCatalog)
	viper.SetDefault("recommend.drop_duplicates", true)
	viper.SetDefault("eval.similarity", "identical")
}

// LoadConfig loads configuration from a TOML file and fills defaults.
func LoadConfig(path string) (*Config, error) {
	setDefault()
	viper.SetConfigType("toml")
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Trace(err)
	}
	var conf Config
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, errors.Trace(err)
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if _, err := c.Split.ParseStrategy(); err != nil {
		return errors.Trace(err)
	}
	if _, err := c.Recommend.ParseKind(); err != nil {
		return errors.Trace(err)
	}
	if c.Split.Days < 1 {
		return errors.Errorf("split.days must be positive: %d", c.Split.Days)
	}
	if c.Split.Fraction <= 0 || c.Split.Fraction >= 1 {
		return errors.Errorf("split.fraction must be in (0, 1): %f", c.Split.Fraction)
	}
	if len(c.Recommend.Groups) == 0 {
		return errors.New("recommend.groups must not be empty")
	}
	for _, groups := range c.Recommend.Groups {
		if groups < 1 {
			return errors.Errorf("recommend.groups must be positive: %d", groups)
		}
	}
	if c.Recommend.TotalRecommendations < 1 {
		return errors.Errorf("recommend.total_recommendations must be positive: %d",
			c.Recommend.TotalRecommendations)
	}
	return nil
}

// ParseStrategy maps the configured strategy name to the split strategy.
func (c SplitConfig) ParseStrategy() (dataset.Strategy, error) {
	switch c.Strategy {
	case "two_sets":
		return dataset.TwoSets, nil
	case "three_sets":
		return dataset.ThreeSets, nil
	case "standard":
		return dataset.Standard, nil
	default:
		return 0, errors.Errorf("unknown split strategy: %v", c.Strategy)
	}
}

// ParseKind maps the configured recommender name to its kind.
func (c RecommendConfig) ParseKind() (recommend.Kind, error) {
	switch c.Kind {
	case "popularity":
		return recommend.PopularityKind, nil
	case "knn":
		return recommend.KNNKind, nil
	default:
		return 0, errors.Errorf("unknown recommender kind: %v", c.Kind)
	}
}

// Options expands the recommender tunables into engine options.
func (c RecommendConfig) Options(seed int64) []recommend.KNNOption {
	return []recommend.KNNOption{
		recommend.WithThreshold(c.Threshold),
		recommend.WithMinCatalog(c.MinCatalog),
		recommend.WithDropDuplicates(c.DropDuplicates),
		recommend.WithSeed(seed),
	}
}
