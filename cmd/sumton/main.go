package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/maxviazov/users-service/internal/sumton"
	"github.com/spf13/cobra"
)

var method string

var rootCmd = &cobra.Command{
	Use:   "sumton [n...]",
	Short: "Sum the integers from 1 to n",
	Long:  `Prints the sum of 1..n for every argument using the closed-form, recursive and iterative implementations.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVarP(&method, "method", "m", "all", "closed_form, recursive, iterative or all")
}

func run(cmd *cobra.Command, args []string) error {
	impls := sumton.Implementations()
	if method != "all" {
		impl, ok := sumton.Lookup(method)
		if !ok {
			return fmt.Errorf("unknown method %q", method)
		}
		impls = []sumton.Implementation{impl}
	}

	for _, arg := range args {
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid n %q: %w", arg, err)
		}
		for _, impl := range impls {
			fmt.Fprintf(cmd.OutOrStdout(), "%s(%d) = %d\n", impl.Name, n, impl.Fn(n))
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
