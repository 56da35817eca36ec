// Command zipcheck checks whether files are well-formed ZIP archives by
// decoding their first local file header.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/charlie-x/zipcheck"
)

var (
	verbose  bool
	jsonOut  bool
	printCRC bool
)

var rootCmd = &cobra.Command{
	Use:   "zipcheck <archive> [<archive>...]",
	Short: "Check that files begin with a well-formed ZIP local file header",
	Long: `zipcheck validates that each given file is a ZIP archive by decoding its
first local file header: the magic number and header signature must match and
the declared file name, extra field and entry data must fit inside the file.

Entry payloads are not decompressed and stored checksums are not verified.
The exit status is 0 for valid files, otherwise the first failure's code.`,
	Version:       zipcheck.Version,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	rootCmd.Flags().BoolVar(&printCRC, "crc", false, "also print the CRC-32 of each file's contents")
}

func run(_ *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	v, err := zipcheck.New(zipcheck.WithLogger(logger))
	if err != nil {
		return err
	}

	exit := zipcheck.CodeOK
	for _, path := range args {
		logger.Info("processing", zap.String("path", path))

		res := v.Validate(path)
		if jsonOut {
			printJSON(res)
		} else {
			printText(res)
		}

		if printCRC {
			printChecksum(path)
		}

		// First failure decides the exit status.
		if !res.Valid() && exit == zipcheck.CodeOK {
			exit = res.Code
		}
	}

	if exit != zipcheck.CodeOK {
		os.Exit(exit.ExitCode())
	}
	return nil
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func printText(res *zipcheck.Result) {
	fmt.Printf("%s: %s (%s, exit code %d)\n", res.Path, res.Reason, res.Code, res.Code.ExitCode())
	if res.Header != nil {
		fmt.Printf("  compression method: %s\n", res.Header.CompressionMethod)
		fmt.Printf("  compressed size:    %d\n", res.Header.CompressedSize)
		fmt.Printf("  uncompressed size:  %d\n", res.Header.UncompressedSize)
		fmt.Printf("  declared crc32:     %08x\n", res.Header.CRC32)
		fmt.Printf("  modified:           %s\n", res.Header.ModTime().Format("2006-01-02 15:04:05"))
	}
}

func printJSON(res *zipcheck.Result) {
	out := map[string]interface{}{
		"path":   res.Path,
		"valid":  res.Valid(),
		"code":   res.Code.String(),
		"exit":   res.Code.ExitCode(),
		"reason": res.Reason,
	}
	if res.Header != nil {
		out["header"] = map[string]interface{}{
			"version_needed":     res.Header.VersionNeeded,
			"flags":              res.Header.Flags,
			"compression_method": res.Header.CompressionMethod.String(),
			"crc32":              fmt.Sprintf("%08x", res.Header.CRC32),
			"compressed_size":    res.Header.CompressedSize,
			"uncompressed_size":  res.Header.UncompressedSize,
			"file_name_length":   res.Header.FileNameLength,
			"extra_field_length": res.Header.ExtraFieldLength,
			"modified":           res.Header.ModTime().Format("2006-01-02T15:04:05"),
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}

func printChecksum(path string) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Path is the user-provided file to check
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		return
	}
	fmt.Printf("  file crc32:         %08x\n", zipcheck.ChecksumCRC32(data))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(zipcheck.CodeArguments.ExitCode())
	}
}
