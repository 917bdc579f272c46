// Package config loads model hyperparameters for the command line tool from
// an optional file and CLASSICML_* environment variables.
package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/classicml/cluster"
	"github.com/YuminosukeSato/classicml/linear"
	"github.com/YuminosukeSato/classicml/neighbors"
	"github.com/YuminosukeSato/classicml/neural"
	"github.com/YuminosukeSato/classicml/pkg/errors"
	"github.com/YuminosukeSato/classicml/tree"
)

// EnvPrefix prefixes environment overrides, e.g. CLASSICML_KNN_K=5.
const EnvPrefix = "CLASSICML"

// Config holds one hyperparameter section per model.
type Config struct {
	Linear LinearConfig `mapstructure:"linear"`
	KNN    KNNConfig    `mapstructure:"knn"`
	Tree   TreeConfig   `mapstructure:"tree"`
	KMeans KMeansConfig `mapstructure:"kmeans"`
	Neural NeuralConfig `mapstructure:"neural"`
}

// LinearConfig configures linear.LinearRegression.
type LinearConfig struct {
	LearningRate  float64 `mapstructure:"learning_rate" validate:"gt=0"`
	MaxIterations int     `mapstructure:"max_iterations" validate:"gt=0"`
	Tol           float64 `mapstructure:"tol" validate:"gte=0"`
}

// KNNConfig configures neighbors.KNN.
type KNNConfig struct {
	K int `mapstructure:"k" validate:"gt=0"`
}

// TreeConfig configures tree.DecisionTree.
type TreeConfig struct {
	MaxDepth        int `mapstructure:"max_depth" validate:"gte=0"`
	MinSamplesSplit int `mapstructure:"min_samples_split" validate:"gte=1"`
}

// KMeansConfig configures cluster.KMeans.
type KMeansConfig struct {
	NClusters int    `mapstructure:"n_clusters" validate:"gt=0"`
	MaxIter   int    `mapstructure:"max_iter" validate:"gt=0"`
	Seed      uint64 `mapstructure:"seed"`
}

// NeuralConfig configures neural.NeuralNetwork. Layers is passed to the constructor.
type NeuralConfig struct {
	Layers       []int   `mapstructure:"layers" validate:"min=2,dive,gt=0"`
	LearningRate float64 `mapstructure:"learning_rate" validate:"gt=0"`
	Epochs       int     `mapstructure:"epochs" validate:"gt=0"`
	Seed         uint64  `mapstructure:"seed"`
}

// setDefaults registers the defaults. kmeans.n_clusters and the neural section
// describe the demo data sets rather than the library defaults.
func setDefaults(v *viper.Viper) {
	v.SetDefault("linear.learning_rate", 0.01)
	v.SetDefault("linear.max_iterations", 1000)
	v.SetDefault("linear.tol", 1e-6)
	v.SetDefault("knn.k", 3)
	v.SetDefault("tree.max_depth", 10)
	v.SetDefault("tree.min_samples_split", 2)
	v.SetDefault("kmeans.n_clusters", 2)
	v.SetDefault("kmeans.max_iter", 100)
	v.SetDefault("kmeans.seed", 42)
	v.SetDefault("neural.layers", []int{2, 4, 1})
	v.SetDefault("neural.learning_rate", 0.5)
	v.SetDefault("neural.epochs", 1000)
	v.SetDefault("neural.seed", 42)
}

// Default returns the configuration used when no file or environment override exists.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads path (YAML, TOML or JSON by extension) when non-empty, applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its validate tag and reports the first violation.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.NewValidationError(fe.Namespace(), "failed '"+fe.Tag()+"' constraint", fe.Value())
	}
	return errors.Wrap(err, "invalid config")
}

// Options converts the section to linear options.
func (c LinearConfig) Options() []linear.Option {
	return []linear.Option{
		linear.WithLearningRate(c.LearningRate),
		linear.WithMaxIterations(c.MaxIterations),
		linear.WithTol(c.Tol),
	}
}

// Options converts the section to neighbors options.
func (c KNNConfig) Options() []neighbors.Option {
	return []neighbors.Option{neighbors.WithK(c.K)}
}

// Options converts the section to tree options.
func (c TreeConfig) Options() []tree.Option {
	return []tree.Option{
		tree.WithMaxDepth(c.MaxDepth),
		tree.WithMinSamplesSplit(c.MinSamplesSplit),
	}
}

// Options converts the section to cluster options.
func (c KMeansConfig) Options() []cluster.KMeansOption {
	return []cluster.KMeansOption{
		cluster.WithNClusters(c.NClusters),
		cluster.WithMaxIter(c.MaxIter),
		cluster.WithSeed(c.Seed),
	}
}

// Options converts the section to neural options, excluding Layers.
func (c NeuralConfig) Options() []neural.Option {
	return []neural.Option{
		neural.WithLearningRate(c.LearningRate),
		neural.WithEpochs(c.Epochs),
		neural.WithSeed(c.Seed),
	}
}
