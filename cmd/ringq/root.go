package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/yago-123/ringq"
)

// capacityEnv provides the default capacity when -k is not given. It may also be set in a .env file.
const capacityEnv = "RINGQ_CAPACITY"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ringq",
	Short: "ringq keeps the K largest values of a stream in ascending order.",
	Long: `ringq keeps the K largest values of a stream in ascending order, backed by a pooled slot allocator. ` +
		`It can select the top values of an input (topk) and measure push throughput and memory (bench).`,
}

func init() {
	rootCmd.PersistentFlags().IntP("capacity", "k", 0,
		fmt.Sprintf("number of values to keep (default $%s or %d)", capacityEnv, ringq.DefaultCapacity))
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

// resolveCapacity picks the -k flag, then RINGQ_CAPACITY, then the library default.
func resolveCapacity(cmd *cobra.Command) (int, error) {
	if cmd.Flags().Changed("capacity") {
		return cmd.Flags().GetInt("capacity")
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Error loading .env: %s", err)
	}

	raw, ok := os.LookupEnv(capacityEnv)
	if !ok || raw == "" {
		return ringq.DefaultCapacity, nil
	}

	k, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", capacityEnv, raw, err)
	}
	return k, nil
}
