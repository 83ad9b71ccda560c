package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/render"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

var ErrBadInput = errors.New(`expected "row col", "r" or "q"`)

type Options struct {
	ClearScreen bool
	Output      []termenv.OutputOption
}

// Play runs a two player game on one terminal until the input ends or "q" is read.
func Play(in io.Reader, out io.Writer, opts Options) error {
	controller := tictactoe.NewGameController(entity.NewSession("local"))
	terminal := render.NewTerminal(out, controller, opts.ClearScreen, opts.Output...)
	controller.Subscribe(terminal)

	terminal.Draw()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit":
			return nil
		case "r", "reset":
			controller.Reset()
			continue
		}

		row, col, err := parseMove(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		if _, err = controller.ApplyMove(row, col); err != nil {
			fmt.Fprintln(out, describe(err))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func parseMove(line string) (int, int, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 2 {
		return 0, 0, ErrBadInput
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, ErrBadInput
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, ErrBadInput
	}

	return row, col, nil
}

func describe(err error) string {
	switch {
	case errors.Is(err, apperror.ErrGameAlreadyOver):
		return "the game is over, press r to play again"
	case errors.Is(err, apperror.ErrCellOccupied):
		return "that cell is taken"
	case errors.Is(err, apperror.ErrOutOfRange):
		return "row and col must be between 0 and 2"
	default:
		return err.Error()
	}
}
