// Command play is a terminal hotseat board driving the rules engine directly.
//
//	e2 e4   move
//	m e2    list destinations for the piece on e2
//	u       undo
//	r       redo
//	n       new game
//	q       quit
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/javekk/rusty-chess/internal/model"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, PartsExclude: []string{zerolog.TimestampFieldName}})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := run(model.NewGame(), os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("play")
	}
}

func run(game *model.Game, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	printBoard(out, game)
	for {
		fmt.Fprintf(out, "%s> ", game.ToMove())
		if !scanner.Scan() {
			return scanner.Err()
		}
		if quit := handleLine(out, game, scanner.Text()); quit {
			return nil
		}
	}
}

// handleLine applies one command and reports whether the user asked to quit.
// Rejected commands print a note and leave the game as it was.
func handleLine(out io.Writer, game *model.Game, line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}

	switch {
	case fields[0] == "q":
		return true
	case fields[0] == "u":
		if !game.Undo() {
			fmt.Fprintln(out, "Nothing to undo")
			return false
		}
	case fields[0] == "r":
		if !game.Redo() {
			fmt.Fprintln(out, "Nothing to redo")
			return false
		}
	case fields[0] == "n":
		game.Restart()
	case fields[0] == "m" && len(fields) == 2:
		from, err := model.ParsePosition(fields[1])
		if err != nil {
			fmt.Fprintln(out, err)
			return false
		}
		moves := game.LegalMoves(from)
		squares := make([]string, 0, len(moves))
		for _, to := range moves {
			squares = append(squares, to.String())
		}
		fmt.Fprintf(out, "%s: %s\n", from, strings.Join(squares, " "))
		return false
	case len(fields) == 2:
		from, err := model.ParsePosition(fields[0])
		if err != nil {
			fmt.Fprintln(out, err)
			return false
		}
		to, err := model.ParsePosition(fields[1])
		if err != nil {
			fmt.Fprintln(out, err)
			return false
		}
		if err := game.MakeMove(from, to); err != nil {
			fmt.Fprintf(out, "Invalid move: %v\n", err)
			return false
		}
		log.Debug().Stringer("from", from).Stringer("to", to).Msg("move")
	default:
		fmt.Fprintln(out, "commands: <from> <to>, m <square>, u, r, n, q")
		return false
	}

	printBoard(out, game)
	return false
}

func printBoard(out io.Writer, game *model.Game) {
	fmt.Fprint(out, game.Board().String())
	if last, ok := game.LastMove(); ok {
		fmt.Fprintf(out, "last move: %s\n", last.Notation)
	}
}
