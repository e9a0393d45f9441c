package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/teenjuna/ga"
	"github.com/teenjuna/ga/codec/gob"
	"github.com/teenjuna/ga/codec/json"
	"github.com/teenjuna/ga/compress"
)

type fileConfig struct {
	Bucket           string `toml:"bucket"`
	Addr             string `toml:"addr"`
	File             string `toml:"file"`
	Durable          bool   `toml:"durable"`
	RedisAddr        string `toml:"redis_addr"`
	RedisDB          int    `toml:"redis_db"`
	Codec            string `toml:"codec"`
	Compression      string `toml:"compression"`
	CompressionLevel int    `toml:"compression_level"`
	LogLevel         string `toml:"log_level"`
}

type settings struct {
	bucket      string
	addr        string
	file        string
	durable     bool
	redisAddr   string
	redisDB     int
	codec       string
	compression string
	level       int
	logLevel    zerolog.Level
}

func defaultSettings() settings {
	return settings{
		addr:        "localhost:8765",
		codec:       "json",
		compression: "none",
		level:       compress.DefaultLevel,
		logLevel:    zerolog.InfoLevel,
	}
}

func loadSettings(path string) (settings, error) {
	s := defaultSettings()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return settings{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("bucket") {
		s.bucket = strings.TrimSpace(raw.Bucket)
	}

	if meta.IsDefined("addr") {
		s.addr = strings.TrimSpace(raw.Addr)
	}

	if meta.IsDefined("file") {
		s.file = strings.TrimSpace(raw.File)
	}

	if meta.IsDefined("durable") {
		s.durable = raw.Durable
	}

	if meta.IsDefined("redis_addr") {
		s.redisAddr = strings.TrimSpace(raw.RedisAddr)
	}

	if meta.IsDefined("redis_db") {
		s.redisDB = raw.RedisDB
	}

	if meta.IsDefined("codec") {
		s.codec = strings.TrimSpace(raw.Codec)
	}

	if meta.IsDefined("compression") {
		s.compression = strings.TrimSpace(raw.Compression)
	}

	if meta.IsDefined("compression_level") {
		s.level = raw.CompressionLevel
	}

	if meta.IsDefined("log_level") {
		level, err := zerolog.ParseLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return settings{}, fmt.Errorf("parse log_level: %w", err)
		}
		s.logLevel = level
	}

	return s, nil
}

func (s settings) options() ([]ga.Option, error) {
	options := []ga.Option{
		ga.WithAddr(s.addr),
		ga.WithCompressionLevel(s.level),
	}

	switch s.codec {
	case "json":
		options = append(options, ga.WithCodec(json.New()))
	case "gob":
		options = append(options, ga.WithCodec(gob.New()))
	default:
		return nil, fmt.Errorf("codec %q not supported", s.codec)
	}

	compression, err := compress.ByName(s.compression)
	if err != nil {
		return nil, err
	}
	options = append(options, ga.WithCompression(compression))

	if s.bucket != "" {
		options = append(options, ga.WithBucket(s.bucket))
	}
	if s.file != "" {
		options = append(options, ga.WithFile(s.file), ga.WithDurable(s.durable))
	}
	if s.redisAddr != "" {
		options = append(options, ga.WithRedis(s.redisAddr, s.redisDB))
	}

	return options, nil
}
