package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hpackCodec/internal/helper"
	"hpackCodec/internal/hpack"
	"hpackCodec/internal/inspector"
	"hpackCodec/internal/logging"
)

var (
	flagTableSize int
	flagIndexing  string
	flagHuffman   string
	flagConfig    string
)

func codecOptions() hpack.Options {
	return hpack.Options{
		TableSize: flagTableSize,
		Indexing:  hpack.IndexingPolicy(flagIndexing),
		Huffman:   hpack.HuffmanPolicy(flagHuffman),
	}
}

var rootCmd = &cobra.Command{
	Use:   "hpackcodec",
	Short: "HPACK (RFC 7541) header block encoder/decoder",
	Long: `hpackcodec compresses and decompresses HTTP/2 header blocks.

Examples:
  echo ':method: GET' | hpackcodec encode          # headers -> hex block
  hpackcodec decode 828684410f7777772e6578616d706c652e636f6d
  hpackcodec serve --config inspector.yaml         # HTTP inspector API`,
}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode 'name: value' lines from stdin into a hex header block",
	RunE: func(cmd *cobra.Command, args []string) error {
		headers, err := helper.ReadHeaderList(os.Stdin)
		if err != nil {
			return err
		}

		comp := hpack.NewCompressor(codecOptions())
		block, err := comp.Encode(headers)
		if err != nil {
			return fmt.Errorf("failed to encode headers: %w", err)
		}

		fmt.Println(hex.EncodeToString(block))
		return nil
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode [hex block...]",
	Short: "Decode a hex header block into 'name: value' lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		input := strings.Join(args, "")
		if input == "" {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			input = string(raw)
		}

		block, err := helper.ParseHexBlock(input)
		if err != nil {
			return err
		}

		dec := hpack.NewDecompressor(codecOptions())
		headers, err := dec.Decode(block)
		if err != nil {
			return fmt.Errorf("failed to decode block: %w", err)
		}

		fmt.Print(helper.FormatHeaderList(headers))
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP inspector API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagConfig == "" {
			return fmt.Errorf("the --config flag is required")
		}

		conf, err := inspector.LoadConfig(flagConfig)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err := logging.NewDefaultLogger(logging.LogLevel(strings.ToUpper(conf.Logger.Level)), conf.Logger.File)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}

		ins := inspector.New(conf.Options(), logger)
		return ins.Start(conf.Server.Port)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagTableSize, "table-size", hpack.DefaultMaxTableSize, "maximum dynamic table size in octets")
	rootCmd.PersistentFlags().StringVar(&flagIndexing, "indexing", string(hpack.IndexAll), "indexing policy: all, static or never")
	rootCmd.PersistentFlags().StringVar(&flagHuffman, "huffman", string(hpack.HuffmanShorter), "huffman policy: always, never or shorter")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "inspector config file")

	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
