package work

import (
	"github.com/goodnatureofminers/powredeem/internal/failure"
)

const opBuildCandidate = "build_candidate"

// MessageSize is the exact length of a work message in bytes.
const MessageSize = 68

// Message is the fixed text committed to by a proof-of-work lock.
type Message [MessageSize]byte

// ParseMessage copies text into a Message. The size is checked before the
// content so any text of the wrong length reports the size error.
func ParseMessage(text string) (Message, error) {
	if len(text) != MessageSize {
		return Message{}, failure.New(failure.KindFormat, opBuildCandidate, "wrong message size")
	}
	var m Message
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c < 0x20 || c > 0x7e {
			return Message{}, failure.New(failure.KindFormat, opBuildCandidate, "message is not printable ascii")
		}
		m[i] = c
	}
	return m, nil
}

func (m Message) String() string {
	return string(m[:])
}

// Candidate is the public puzzle a later spender of the locked output must solve.
type Candidate struct {
	Message Message
	Target  Target
}

// NewCandidate pairs a message with an already decoded target.
func NewCandidate(messageText string, target Target) (Candidate, error) {
	message, err := ParseMessage(messageText)
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{Message: message, Target: target}, nil
}

// ReadCandidate decodes all three textual candidate fields, message first.
func ReadCandidate(messageText, exponentText, valueText string) (Candidate, error) {
	message, err := ParseMessage(messageText)
	if err != nil {
		return Candidate{}, err
	}
	target, err := DecodeTarget(exponentText, valueText)
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{Message: message, Target: target}, nil
}
