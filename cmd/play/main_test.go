package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/javekk/rusty-chess/internal/model"
)

func TestRunSession(t *testing.T) {
	input := strings.Join([]string{
		"e2 e4",
		"e7 e5",
		"e1 e3",
		"m g1",
		"u",
		"r",
		"bogus",
		"q",
		"d2 d4",
	}, "\n")

	var out bytes.Buffer
	game := model.NewGame()
	if err := run(game, strings.NewReader(input), &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"last move: e4",
		"last move: e5",
		"Invalid move:",
		"g1: f3 h3 e2",
		"commands:",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if game.Len() != 2 || game.ToMove() != model.White {
		t.Errorf("game after session: %d moves, %s to move", game.Len(), game.ToMove())
	}
}

func TestHandleLineUndoRedoAtEnds(t *testing.T) {
	game := model.NewGame()
	var out bytes.Buffer

	handleLine(&out, game, "u")
	handleLine(&out, game, "r")
	if got := out.String(); got != "Nothing to undo\nNothing to redo\n" {
		t.Errorf("output = %q", got)
	}

	out.Reset()
	handleLine(&out, game, "m z9")
	if out.Len() == 0 {
		t.Error("bad square produced no message")
	}
	if quit := handleLine(&out, game, "Q"); !quit {
		t.Error("Q did not quit")
	}
}
