package inspector

import (
	"errors"
	"os"

	"gopkg.in/yaml.v2"

	"hpackCodec/internal/hpack"
)

type ServerConfig struct {
	Port int `yaml:"port"`
}

type CodecConfig struct {
	TableSize int    `yaml:"table_size"`
	Indexing  string `yaml:"indexing"`
	Huffman   string `yaml:"huffman"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Codec  CodecConfig  `yaml:"codec"`
	Logger LoggerConfig `yaml:"logger"`
}

func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		return errors.New("server port is not set")
	}
	switch c.Codec.Indexing {
	case "", string(hpack.IndexAll), string(hpack.IndexStatic), string(hpack.IndexNever):
	default:
		return errors.New("codec indexing must be one of: all, static, never")
	}
	switch c.Codec.Huffman {
	case "", string(hpack.HuffmanAlways), string(hpack.HuffmanNever), string(hpack.HuffmanShorter):
	default:
		return errors.New("codec huffman must be one of: always, never, shorter")
	}
	if c.Codec.TableSize < 0 {
		return errors.New("codec table_size must not be negative")
	}
	if c.Logger.Level == "" {
		return errors.New("logger level is not set")
	}
	return nil
}

// Options translates the codec section into hpack options; unset fields fall
// back to the codec defaults.
func (c *Config) Options() hpack.Options {
	return hpack.Options{
		TableSize: c.Codec.TableSize,
		Indexing:  hpack.IndexingPolicy(c.Codec.Indexing),
		Huffman:   hpack.HuffmanPolicy(c.Codec.Huffman),
	}
}

func LoadConfig(configFileName string) (*Config, error) {
	data, err := os.ReadFile(configFileName)
	if err != nil {
		return nil, err
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
