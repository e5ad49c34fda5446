package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/simon/internal/simon"
)

var (
	seqSeed   uint64
	seqLength int
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Print the sequence a seed produces",
	Long: `Print the colors a seeded session would ask for, one round per line.
Use it with game.seed to rehearse or reproduce a session.`,
	RunE: runSequence,
}

func init() {
	sequenceCmd.Flags().Uint64Var(&seqSeed, "seed", 0, "seed (default from config game.seed)")
	sequenceCmd.Flags().IntVarP(&seqLength, "length", "n", 10, "number of rounds")
	rootCmd.AddCommand(sequenceCmd)
}

func runSequence(cmd *cobra.Command, args []string) error {
	seed := seqSeed
	if seed == 0 {
		seed = cfg.Game.Seed
	}
	if seed == 0 {
		return fmt.Errorf("a non-zero seed is required (--seed or game.seed)")
	}
	if seqLength < 1 {
		return fmt.Errorf("length must be at least 1, got %d", seqLength)
	}

	e := simon.NewSeededEngine(seed)
	for i := 0; i < seqLength; i++ {
		e.Extend()
		names := make([]string, 0, len(e.Pending()))
		for _, c := range e.Pending() {
			names = append(names, c.String())
		}
		line := fmt.Sprintf("%3d  %s", e.Score(), strings.Join(names, " "))
		if m := e.MilestoneText(); m != "" {
			line += "  " + m
		}
		printf(cmd, "%s\n", line)
	}
	return nil
}
