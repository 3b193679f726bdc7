package live

import "testing"

func TestAccumulatorAppendsNonFinalChunks(t *testing.T) {
	accumulator := newTranscriptAccumulator(nil)

	accumulator.add("turn on ", false)
	accumulator.add("the lights", false)

	if got := accumulator.current(); got != "turn on the lights" {
		t.Fatalf("expected accumulated text, got %q", got)
	}
}

func TestAccumulatorFinalChunkClosesTurn(t *testing.T) {
	var finalized string
	accumulator := newTranscriptAccumulator(func(text string) { finalized = text })

	accumulator.add("open the ", false)
	accumulator.add("window", true)

	if finalized != "open the window" {
		t.Fatalf("expected finalized turn text, got %q", finalized)
	}
	if got := accumulator.current(); got != "" {
		t.Fatalf("expected no open turn after finalization, got %q", got)
	}
}

func TestAccumulatorStartsFreshTurnAfterFinal(t *testing.T) {
	var finals []string
	accumulator := newTranscriptAccumulator(func(text string) { finals = append(finals, text) })

	accumulator.add("first", true)
	accumulator.add("second ", false)
	accumulator.add("turn", true)

	if len(finals) != 2 || finals[0] != "first" || finals[1] != "second turn" {
		t.Fatalf("expected two independent turns, got %v", finals)
	}
}

func TestAccumulatorResetDiscardsOpenTurn(t *testing.T) {
	var finals int
	accumulator := newTranscriptAccumulator(func(string) { finals++ })

	accumulator.add("half a ", false)
	accumulator.reset()
	accumulator.add("sentence", true)

	if finals != 1 {
		t.Fatalf("expected one finalization, got %d", finals)
	}
	if got := accumulator.current(); got != "" {
		t.Fatalf("expected empty accumulator, got %q", got)
	}
}
