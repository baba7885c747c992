package protocols

// majorityState is the logical decomposition of a Majority state: an
// opinion bit and a strength bit. Encoded as 2*strong + opinion, giving
// four numeric states in [0, 4).
type majorityState struct {
	opinion bool
	strong  bool
}

func encodeMajority(s majorityState) int {
	v := 0
	if s.strong {
		v |= 0b10
	}
	if s.opinion {
		v |= 0b01
	}
	return v
}

func decodeMajority(x int) majorityState {
	return majorityState{opinion: x&0b01 != 0, strong: x&0b10 != 0}
}

// Majority is the classic strong/weak opinion-dynamics protocol: two
// agents with the same strength both become weak; a strong agent
// converts an opposing weak agent to its own opinion, staying strong
// itself. Grounded on MajorityProtocol (majority_protocol.hpp).
type Majority struct{}

func (Majority) NumStates() int        { return 4 }
func (Majority) IsDeterministic() bool { return true }
func (Majority) IsOneWay() bool        { return false }

func (Majority) Apply(fst, snd int) (int, int) {
	first := decodeMajority(fst)
	second := decodeMajority(snd)

	switch {
	case first.strong == second.strong:
		first.strong = false
		second.strong = false
	case first.strong:
		second.opinion = first.opinion
	default:
		first.opinion = second.opinion
	}

	return encodeMajority(first), encodeMajority(second)
}
