package conversation

// Speaker identifies who contributed a turn.
type Speaker string

const (
	User      Speaker = "user"
	Assistant Speaker = "assistant"
)

// Turn is one speaker's contribution: an ordered list of content blocks.
type Turn struct {
	Speaker Speaker
	Blocks  []Block
}

// Log is an append-only ordered sequence of turns. It has a single writer
// (the orchestrator); turns are never removed, reordered, or mutated after
// being appended. The zero value is ready to use.
type Log struct {
	turns []Turn
}

// AppendUserText appends a user turn holding a single text block.
func (l *Log) AppendUserText(text string) {
	l.turns = append(l.turns, Turn{Speaker: User, Blocks: []Block{Text{Text: text}}})
}

// AppendAssistant appends the full assistant response as one turn. The block
// list is copied so later mutation of the argument cannot reach the log.
func (l *Log) AppendAssistant(blocks []Block) {
	l.turns = append(l.turns, Turn{Speaker: Assistant, Blocks: cloneBlocks(blocks)})
}

// AppendToolResults appends accumulated tool results as a single turn.
// The turn is recorded with the User speaker: the downstream service protocol
// requires tool results to appear as the human-role turn following an
// assistant tool-use turn.
func (l *Log) AppendToolResults(results []Block) {
	l.turns = append(l.turns, Turn{Speaker: User, Blocks: cloneBlocks(results)})
}

// History returns the full ordered turn sequence for submission to the
// language-model service. The returned slice is a copy; callers cannot
// alter the log through it.
func (l *Log) History() []Turn {
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len reports the number of turns appended so far.
func (l *Log) Len() int { return len(l.turns) }

func cloneBlocks(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	copy(out, blocks)
	return out
}
