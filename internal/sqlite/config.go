package sqlite

import "strings"

type Config struct {
	file    string
	durable bool
}

type ConfigFunc = func(c *Config)

func WithFile(file string) ConfigFunc {
	file = strings.TrimSpace(file)
	if file == "" {
		panic("file can't be blank")
	}
	if strings.Contains(file, "?") {
		panic("file can't contain ?")
	}
	return func(c *Config) {
		c.file = file
	}
}

// WithDurable forces fully synchronous writes at the cost of throughput.
func WithDurable(durable bool) ConfigFunc {
	return func(c *Config) {
		c.durable = durable
	}
}
