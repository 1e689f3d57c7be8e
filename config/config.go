package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iamNilotpal/adler32/internal/adapters/checksum"
	"github.com/iamNilotpal/adler32/internal/adapters/compression"
	"github.com/iamNilotpal/adler32/internal/core/domain"
	"github.com/iamNilotpal/adler32/internal/core/services/frame"
	"github.com/iamNilotpal/adler32/internal/core/services/stream"
)

// Output formats accepted by the sum command.
const (
	OutputHex   = "hex"
	OutputJSON  = "json"
	OutputProto = "proto"
)

type Config struct {
	LogLevel string       `yaml:"log_level"` // zap level name
	Output   string       `yaml:"output"`    // hex, json or proto
	Stream   StreamConfig `yaml:"stream"`
	Frame    FrameConfig  `yaml:"frame"`
}

// Holds stream summer configuration
type StreamConfig struct {
	BufferSize  uint32   `yaml:"buffer_size"`  // Size of each read
	ExcludeDirs []string `yaml:"exclude_dirs"` // Directories skipped by recursive sums
	Extension   string   `yaml:"extension"`    // Only sum files with this extension
}

// Holds frame container configuration
type FrameConfig struct {
	BlockSize        uint32 `yaml:"block_size"`        // Bytes per frame when sealing
	MaxPayloadSize   uint32 `yaml:"max_payload_size"`  // Largest frame accepted
	Checksum         bool   `yaml:"checksum"`          // Store an Adler-32 per frame
	VerifyOnRead     bool   `yaml:"verify_on_read"`    // Check the Adler-32 when unsealing
	VerifyOnWrite    bool   `yaml:"verify_on_write"`   // Round trip compressed payloads before writing
	Compression      bool   `yaml:"compression"`       // Compress frame payloads
	Codec            string `yaml:"codec"`             // zstd or zlib
	CompressionLevel uint8  `yaml:"compression_level"` // Codec specific level, 0 for default
}

// Returns a Config struct with reasonable default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Output:   OutputHex,
		Stream: StreamConfig{
			BufferSize: stream.DefaultBufferSize,
		},
		Frame: FrameConfig{
			BlockSize:      1024 * 1024, // 1MB
			MaxPayloadSize: frame.DefaultMaxPayloadSize,
			Checksum:       true,
			VerifyOnRead:   true,
			Compression:    true,
			Codec:          string(compression.Zstd),
		},
	}
}

// Loads configuration from a YAML file. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(filename string) (*Config, error) {
	// Read the config file
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// StreamOptions converts the stream section into summer options.
func (c *Config) StreamOptions() *domain.StreamOptions {
	return &domain.StreamOptions{BufferSize: c.Stream.BufferSize}
}

// FrameOptions converts the frame section into container options.
func (c *Config) FrameOptions() *domain.FrameOptions {
	return &domain.FrameOptions{
		MaxPayloadSize: c.Frame.MaxPayloadSize,
		ChecksumOptions: &domain.ChecksumOptions{
			Enable:        c.Frame.Checksum,
			Algorithm:     checksum.Adler32,
			VerifyOnRead:  c.Frame.VerifyOnRead,
			VerifyOnWrite: c.Frame.VerifyOnWrite,
		},
		CompressionOptions: &domain.CompressionOptions{
			Enable: c.Frame.Compression,
			Codec:  domain.CompressionCodec(c.Frame.Codec),
			Level:  c.Frame.CompressionLevel,
		},
	}
}

func validateConfig(config *Config) error {
	switch config.Output {
	case OutputHex, OutputJSON, OutputProto:
	default:
		return fmt.Errorf("output must be one of %s, %s or %s", OutputHex, OutputJSON, OutputProto)
	}

	if err := stream.Validate(config.StreamOptions()); err != nil {
		return fmt.Errorf("invalid stream configuration: %w", err)
	}

	if err := validateFrameConfig(config); err != nil {
		return fmt.Errorf("invalid frame configuration: %w", err)
	}

	return nil
}

func validateFrameConfig(config *Config) error {
	if config.Frame.BlockSize == 0 {
		return fmt.Errorf("block_size must be greater than 0")
	}

	if config.Frame.BlockSize > config.Frame.MaxPayloadSize {
		return fmt.Errorf("block_size must not exceed max_payload_size")
	}

	return frame.Validate(config.FrameOptions())
}
