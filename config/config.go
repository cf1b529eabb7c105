package config

const (
	BuildVersion = "v0.1.0-BUILD_VERSION"

	InlineOperationCount = 100000
	PooledOperationCount = 500000
	MessageSize          = 256
	LogLevel             = 2

	MinimumBatchSize = 1
	MaximumBatchSize = 4096
)

const (
	OperationSign        = "sign"
	OperationVerify      = "verify"
	OperationVerifyBatch = "verifyBatch"
	OperationAccumulator = "accumulator"

	ModeInline = "inline"
	ModePooled = "pooled"

	SignalsGroup = "group"
	SignalsTask  = "task"

	DefaultProvider = "voi"
)

func BatchSizes() []int {
	var sizes []int
	for s := MinimumBatchSize; s <= MaximumBatchSize; s *= 2 {
		sizes = append(sizes, s)
	}
	return sizes
}

func Operations() []string {
	return []string{OperationSign, OperationVerify, OperationVerifyBatch, OperationAccumulator}
}

func Modes() []string {
	return []string{ModeInline, ModePooled}
}
