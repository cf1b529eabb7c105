package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

type Custom struct {
	Bench struct {
		Operations           []string `toml:"operations"`
		BatchSizes           []int    `toml:"batch-sizes"`
		Modes                []string `toml:"modes"`
		InlineOperationCount int      `toml:"inline-operation-count"`
		PooledOperationCount int      `toml:"pooled-operation-count"`
		MessageSize          int      `toml:"message-size"`
		Signals              string   `toml:"signals"`
	} `toml:"bench"`
	Pool struct {
		Workers    int `toml:"workers"`
		QueueLimit int `toml:"queue-limit"`
	} `toml:"pool"`
	Provider struct {
		Name string `toml:"name"`
	} `toml:"provider"`
	Log struct {
		Level   int    `toml:"level"`
		Filter  string `toml:"filter"`
		Limiter int    `toml:"limiter"`
	} `toml:"log"`
}

func Default() *Custom {
	var c Custom
	c.fillDefaults()
	return &c
}

// Initialize reads a TOML file over the compiled-in defaults, any key left
// out keeps its default value.
func Initialize(file string) (*Custom, error) {
	f, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var config Custom
	err = toml.Unmarshal(f, &config)
	if err != nil {
		return nil, err
	}
	config.fillDefaults()
	return &config, config.Validate()
}

func (c *Custom) fillDefaults() {
	if len(c.Bench.Operations) == 0 {
		c.Bench.Operations = Operations()
	}
	if len(c.Bench.BatchSizes) == 0 {
		c.Bench.BatchSizes = BatchSizes()
	}
	if len(c.Bench.Modes) == 0 {
		c.Bench.Modes = Modes()
	}
	if c.Bench.InlineOperationCount == 0 {
		c.Bench.InlineOperationCount = InlineOperationCount
	}
	if c.Bench.PooledOperationCount == 0 {
		c.Bench.PooledOperationCount = PooledOperationCount
	}
	if c.Bench.MessageSize == 0 {
		c.Bench.MessageSize = MessageSize
	}
	if c.Bench.Signals == "" {
		c.Bench.Signals = SignalsGroup
	}
	if c.Provider.Name == "" {
		c.Provider.Name = DefaultProvider
	}
	if c.Log.Level == 0 {
		c.Log.Level = LogLevel
	}
}

func (c *Custom) Validate() error {
	for _, op := range c.Bench.Operations {
		if !contains(Operations(), op) {
			return fmt.Errorf("invalid operation %s", op)
		}
	}
	for _, m := range c.Bench.Modes {
		if !contains(Modes(), m) {
			return fmt.Errorf("invalid mode %s", m)
		}
	}
	for _, s := range c.Bench.BatchSizes {
		if s < MinimumBatchSize || s > MaximumBatchSize || s&(s-1) != 0 {
			return fmt.Errorf("invalid batch size %d", s)
		}
	}
	if c.Bench.InlineOperationCount < 0 || c.Bench.PooledOperationCount < 0 {
		return fmt.Errorf("invalid operation count %d %d",
			c.Bench.InlineOperationCount, c.Bench.PooledOperationCount)
	}
	if c.Bench.MessageSize < 0 {
		return fmt.Errorf("invalid message size %d", c.Bench.MessageSize)
	}
	if c.Bench.Signals != SignalsGroup && c.Bench.Signals != SignalsTask {
		return fmt.Errorf("invalid signals %s", c.Bench.Signals)
	}
	if c.Pool.Workers < 0 || c.Pool.QueueLimit < 0 {
		return fmt.Errorf("invalid pool %d %d", c.Pool.Workers, c.Pool.QueueLimit)
	}
	return nil
}

func contains(set []string, s string) bool {
	for _, e := range set {
		if e == s {
			return true
		}
	}
	return false
}
