package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"dumpextract/internal/extractor"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	inputPath  string
	outputPath string
	tag        string
	strict     bool
	verbose    bool
	force      bool

	dumpInputPath  string
	dumpOutputPath string
	dumpTag        string
	startAddress   string
)

var rootCmd = &cobra.Command{
	Use:   "dumpextract",
	Short: "dumpextract - Reassemble binary payloads from ESP-IDF hex dump logs",
	Long: `dumpextract reads a device log containing ESP_LOG_BUFFER_HEXDUMP lines and
writes the dumped bytes back out as a raw binary file.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// checkTerminalOutput returns an error if binary output would go to a terminal and force is false
func checkTerminalOutput(output string, isTerminal bool, force bool) error {
	if output == extractor.StdioPath && isTerminal && !force {
		return fmt.Errorf("refusing to write binary data to a terminal. Redirect stdout or use --force to override")
	}
	return nil
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the dumped payload into a binary file",
	Long: `Extract the dumped payload into a binary file.

Every line of the form

  D (<tick>) <tag>: 0x<address>   xx xx xx ... xx |

contributes its bytes to the output, in file order. Other lines are skipped.

Paths default to $DUMP_INPUT and $DUMP_OUTPUT, then to a_dump.txt and
raw_dump.mp3. Use '-' for stdin or stdout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := extractor.Config{
			Input:  extractor.ResolvePath(inputPath, "DUMP_INPUT", extractor.DefaultInput),
			Output: extractor.ResolvePath(outputPath, "DUMP_OUTPUT", extractor.DefaultOutput),
			Tag:    tag,
			Strict: strict,
			Stdin:  cmd.InOrStdin(),
			Stdout: cmd.OutOrStdout(),
		}
		if err := checkTerminalOutput(cfg.Output, stdoutIsTerminal(), force); err != nil {
			return err
		}
		if _, err := extractor.Run(cfg); err != nil {
			return fmt.Errorf("extract failed: %w", err)
		}
		return nil
	},
}

var hexdumpCmd = &cobra.Command{
	Use:   "hexdump",
	Short: "Render a binary file as ESP-IDF hex dump lines",
	Long: `Render a binary file as ESP-IDF hex dump lines.

The output can be fed back into 'dumpextract extract'. Use '-' for stdin or
stdout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := strconv.ParseUint(startAddress, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid --address %q: %w", startAddress, err)
		}
		if dumpInputPath == "" {
			return fmt.Errorf("--input is required")
		}
		err = extractor.RunDump(extractor.DumpConfig{
			Input:   dumpInputPath,
			Output:  dumpOutputPath,
			Tag:     dumpTag,
			Address: address,
			Stdin:   cmd.InOrStdin(),
			Stdout:  cmd.OutOrStdout(),
		})
		if err != nil {
			return fmt.Errorf("hexdump failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	extractCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Dump log to read (default: $DUMP_INPUT or a_dump.txt)")
	extractCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Binary file to write (default: $DUMP_OUTPUT or raw_dump.mp3)")
	extractCmd.Flags().StringVar(&tag, "tag", "", "Only use dump lines with this log tag")
	extractCmd.Flags().BoolVar(&strict, "strict", false, "Only accept lines with exactly 16 bytes")
	extractCmd.Flags().BoolVar(&force, "force", false, "Write binary output to stdout even if it is a terminal")

	hexdumpCmd.Flags().StringVarP(&dumpInputPath, "input", "i", "", "Binary file to read ('-' for stdin)")
	hexdumpCmd.Flags().StringVarP(&dumpOutputPath, "output", "o", extractor.StdioPath, "Dump log to write")
	hexdumpCmd.Flags().StringVar(&dumpTag, "tag", "dump", "Log tag to put on each line")
	hexdumpCmd.Flags().StringVar(&startAddress, "address", "0", "Address of the first byte (decimal or 0x-prefixed hex)")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(hexdumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
