package main

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yago-123/ringq"
)

var topkCmd = &cobra.Command{
	Use:   "topk [numbers...]",
	Short: "Print the K largest integers, smallest first",
	Long: `Print the K largest integers, smallest first. Integers are read from the arguments, or from ` +
		`standard input (whitespace separated) when no argument is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		k, err := resolveCapacity(cmd)
		if err != nil {
			return err
		}

		q, err := ringq.New[int64](ringq.WithCapacity(k))
		if err != nil {
			return err
		}
		defer q.Close()

		push := func(field string) error {
			v, errParse := strconv.ParseInt(field, 10, 64)
			if errParse != nil {
				return fmt.Errorf("parse %q: %w", field, errParse)
			}
			return q.Push(v)
		}

		if len(args) > 0 {
			for _, arg := range args {
				if errPush := push(arg); errPush != nil {
					return errPush
				}
			}
		} else {
			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Split(bufio.ScanWords)
			for scanner.Scan() {
				if errPush := push(scanner.Text()); errPush != nil {
					return errPush
				}
			}
			if errScan := scanner.Err(); errScan != nil {
				return fmt.Errorf("read input: %w", errScan)
			}
		}

		out := cmd.OutOrStdout()
		for v := range q.All() {
			fmt.Fprintln(out, v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topkCmd)
}
