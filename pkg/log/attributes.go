package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "LinearRegression".
	ModelNameKey = "model.name"
	// EstimatorIDKey identifies one estimator instance.
	EstimatorIDKey = "estimator.id"
	// OperationKey is one of the Operation* values below.
	OperationKey = "ml.operation"
	// ComponentKey names the package emitting the record.
	ComponentKey = "ml.component"
)

// Data shape.
const (
	SamplesKey   = "data.samples"
	FeaturesKey  = "data.features"
	ClassesKey   = "data.classes"
	VocabSizeKey = "data.vocabulary_size"
)

// Training progress and metrics.
const (
	IterationKey  = "training.iteration"
	EpochKey      = "training.epoch"
	ConvergedKey  = "training.converged"
	LossKey       = "metrics.loss"
	InertiaKey    = "metrics.inertia"
	TreeDepthKey  = "tree.depth"
	TreeLeavesKey = "tree.leaves"
)

// Hyperparameters.
const (
	LearningRateKey = "hyperparams.learning_rate"
	RandomSeedKey   = "config.random_seed"
)

// Standard attribute values.
const (
	OperationFit = "fit"
)
