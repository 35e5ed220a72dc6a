package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameNewCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameHandCmd())
	cmd.AddCommand(newGameCellCmd())
	cmd.AddCommand(newGameScoresCmd())
	cmd.AddCommand(newGamePlayCmd())
	cmd.AddCommand(newGameSkipCmd())
	cmd.AddCommand(newGameResetCmd())
	cmd.AddCommand(newGameHistoryCmd("undo", "Undo the last move or skip"))
	cmd.AddCommand(newGameHistoryCmd("redo", "Redo the last undone move or skip"))
	cmd.AddCommand(newGameDeleteCmd())

	return cmd
}

func gamePath(id string) string {
	return "/api/v1/games/" + id
}

func newGameNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name> <name> [name...]",
		Short: "Start a new game for 2 to 4 players",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string][]string{"players": args}
			var result Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List game IDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameList

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show the board, players and current hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get(gamePath(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameHandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hand <id>",
		Short: "Show the current player's hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Hand

			if err := client.Get(gamePath(args[0])+"/hand", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameCellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cell <id> <x> <y>",
		Short: "Show the tile and premium of one square",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}

			var result Cell
			if err := client.Get(fmt.Sprintf("%s/cells/%d/%d", gamePath(args[0]), x, y), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores <id>",
		Short: "Show ranked scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Scores

			if err := client.Get(gamePath(args[0])+"/scores", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamePlayCmd() *cobra.Command {
	var (
		blanks  []int
		ifMatch string
	)

	cmd := &cobra.Command{
		Use:   "play <id> <x> <y> <right|down> <word>",
		Short: "Play a word for the current player",
		Long: `Play a word for the current player.

The word is the full word read from (x, y), including letters already on
the board. Use --blank with the 0-based index of each letter played from a
blank tile.`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}

			req := map[string]any{
				"x":         x,
				"y":         y,
				"direction": args[3],
				"word":      args[4],
				"blanks":    blanks,
			}
			var result MoveResult

			if err := client.PostIfMatch(gamePath(args[0])+"/moves", ifMatch, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&blanks, "blank", nil, "Index of a letter played from a blank tile (repeatable)")
	cmd.Flags().StringVar(&ifMatch, "if-match", "", "Only play if the game version is unchanged")
	return cmd
}

func newGameSkipCmd() *cobra.Command {
	var ifMatch string

	cmd := &cobra.Command{
		Use:   "skip <id>",
		Short: "Pass the turn to the next player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.PostIfMatch(gamePath(args[0])+"/skip", ifMatch, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&ifMatch, "if-match", "", "Only skip if the game version is unchanged")
	return cmd
}

func newGameResetCmd() *cobra.Command {
	var keepScores bool

	cmd := &cobra.Command{
		Use:   "reset <id>",
		Short: "Start the game over with the same players",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]bool{"keep_scores": keepScores}
			var result Game

			if err := client.Post(gamePath(args[0])+"/reset", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepScores, "keep-scores", false, "Keep the players' scores")
	return cmd
}

func newGameHistoryCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Post(gamePath(args[0])+"/"+action, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(gamePath(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game deleted")
			return nil
		},
	}
}
