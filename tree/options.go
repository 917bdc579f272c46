package tree

// Option は DecisionTree のハイパーパラメータを設定する
type Option func(*treeConfig)

type treeConfig struct {
	maxDepth        int
	minSamplesSplit int
}

// WithMaxDepth は木の最大深さを設定する（デフォルト10）
func WithMaxDepth(depth int) Option {
	return func(c *treeConfig) {
		c.maxDepth = depth
	}
}

// WithMinSamplesSplit は分割に必要な最小サンプル数を設定する（デフォルト2）
func WithMinSamplesSplit(n int) Option {
	return func(c *treeConfig) {
		c.minSamplesSplit = n
	}
}
