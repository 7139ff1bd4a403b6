package entities

// Poll is a multiple-choice vote anchored to a platform message. Votes holds
// one ordered voter list per option; a voter appears in at most one list.
type Poll struct {
	AnchorID string
	Question string
	Options  []string
	Votes    [][]string
	AuthorID string
}

const (
	MinOptions = 2
	MaxOptions = 5
)

// CastVote moves the voter to the chosen option, clearing any earlier vote.
// Re-voting the same option is a no-op apart from position.
func (p *Poll) CastVote(voterID string, option int) bool {
	if option < 0 || option >= len(p.Options) {
		return false
	}
	for i, voters := range p.Votes {
		for j, v := range voters {
			if v == voterID {
				p.Votes[i] = append(voters[:j:j], voters[j+1:]...)
				break
			}
		}
	}
	p.Votes[option] = append(p.Votes[option], voterID)
	return true
}

// Tally returns per-option vote counts. Counts sum to the number of distinct
// voters because CastVote keeps each voter in a single list.
func (p *Poll) Tally() []int {
	counts := make([]int, len(p.Options))
	for i, voters := range p.Votes {
		counts[i] = len(voters)
	}
	return counts
}

// TotalVoters counts distinct voters across all options.
func (p *Poll) TotalVoters() int {
	total := 0
	for _, voters := range p.Votes {
		total += len(voters)
	}
	return total
}
