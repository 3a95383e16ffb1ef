package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumi/lumi-bar/internal/cli"
	"github.com/lumi/lumi-bar/pkg/editor"
)

var (
	moveSteps int
)

// NewMoveCommand creates the move command
func NewMoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <button> <up|down>",
		Short: "Move a button up or down",
		Long: `Move a button one or more places towards the top or bottom of the bar.

Moving past the first or last place stops at the boundary.

Examples:
  # Move the third button up
  lumi move 3 up

  # Move a button to the bottom
  lumi move lumi-hub down --steps 99`,
		Args: cobra.ExactArgs(2),
		RunE: runMove,
	}

	cmd.Flags().IntVarP(&moveSteps, "steps", "n", 1, "Number of places to move")

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	dir, err := cli.ParseDirection(args[1])
	if err != nil {
		return err
	}
	if moveSteps < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}

	var from, to int
	err = withButton(cmd, args[0], func(e *editor.Editor, b *editor.Button) (bool, error) {
		e.Select(b)
		from = b.Order()

		for i := 0; i < moveSteps; i++ {
			if dir == cli.Up && e.CanMoveUp() {
				e.MoveUp()
			} else if dir == cli.Down && e.CanMoveDown() {
				e.MoveDown()
			}
		}

		to = b.Order()
		return e.IsDirty(), nil
	})
	if err != nil {
		return err
	}

	if from == to {
		cli.PrintInfo("Button is already at the %s", map[cli.Direction]string{cli.Up: "top", cli.Down: "bottom"}[dir])
		return nil
	}
	cli.PrintSuccess("Moved button from position %d to %d", from+1, to+1)
	return nil
}
