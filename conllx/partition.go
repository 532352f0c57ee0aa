package conllx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	sent "github.com/revelaction/conllx/sentence"
	"github.com/zeebo/blake3"
)

// Selector chooses the partition of a sentence. index is the 0-based position
// of the sentence in the stream and n the number of partitions. The result
// must be in [0, n) and depend only on its arguments.
type Selector interface {
	Select(index int, s sent.Sentence, n int) int
}

// SelectorFunc adapts a function to a Selector.
type SelectorFunc func(index int, s sent.Sentence, n int) int

func (f SelectorFunc) Select(index int, s sent.Sentence, n int) int {
	return f(index, s, n)
}

// RoundRobin sends sentence i to partition i mod n.
func RoundRobin() Selector {
	return SelectorFunc(func(index int, _ sent.Sentence, n int) int {
		return index % n
	})
}

// Weighted distributes each block of sum(weights) consecutive sentences
// according to the weights, f.ex. Weighted(8, 1, 1) sends 8 of every 10
// sentences to partition 0 and 1 to each of partitions 1 and 2. The number
// of weights must be the number of partitions.
func Weighted(weights ...int) (Selector, error) {
	total := 0
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("conllx: negative weight %d", w)
		}
		total += w
	}
	if total == 0 {
		return nil, errors.New("conllx: weights sum to zero")
	}

	// bounds[i] is the exclusive upper bound of partition i in a block
	bounds := make([]int, len(weights))
	acc := 0
	for i, w := range weights {
		acc += w
		bounds[i] = acc
	}

	return SelectorFunc(func(index int, _ sent.Sentence, n int) int {
		if n != len(bounds) {
			return -1
		}
		pos := index % total
		for i, b := range bounds {
			if pos < b {
				return i
			}
		}
		return -1
	}), nil
}

// KeyFunc returns the bytes that identify a sentence for hashing.
type KeyFunc func(index int, s sent.Sentence) []byte

// ContentKey identifies a sentence by its CoNLL-X text.
func ContentKey(_ int, s sent.Sentence) []byte {
	return []byte(Format(s))
}

// Hash selects the partition from the blake3 hash of the sentence key. With
// ContentKey (the default for a nil key) identical sentences always land in
// the same partition, whatever their position.
func Hash(key KeyFunc) Selector {
	if key == nil {
		key = ContentKey
	}

	return SelectorFunc(func(index int, s sent.Sentence, n int) int {
		sum := blake3.Sum256(key(index, s))
		return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
	})
}

// PartitioningWriter routes each sentence to exactly one of its writers.
// Nothing is buffered: a sentence is written as soon as it is received, and
// the first write error stops the writer.
type PartitioningWriter struct {
	writers  []SentenceWriter
	selector Selector

	// index is the number of sentences written
	index int

	err error
}

var _ SentenceWriter = (*PartitioningWriter)(nil)

// NewPartitioningWriter creates a writer with one Writer per sink.
func NewPartitioningWriter(sinks []io.Writer, selector Selector) (*PartitioningWriter, error) {
	writers := make([]SentenceWriter, len(sinks))
	for i, s := range sinks {
		writers[i] = NewWriter(s)
	}

	return NewPartitioningSentenceWriter(writers, selector)
}

// NewPartitioningSentenceWriter partitions over already created writers.
func NewPartitioningSentenceWriter(writers []SentenceWriter, selector Selector) (*PartitioningWriter, error) {
	if len(writers) == 0 {
		return nil, errors.New("conllx: no partitions")
	}

	if selector == nil {
		return nil, errors.New("conllx: nil selector")
	}

	return &PartitioningWriter{writers: writers, selector: selector}, nil
}

// WriteSentence writes s to the partition chosen by the selector.
func (p *PartitioningWriter) WriteSentence(s sent.Sentence) error {
	if p.err != nil {
		return p.err
	}

	n := len(p.writers)
	idx := p.selector.Select(p.index, s, n)
	if idx < 0 || idx >= n {
		p.err = fmt.Errorf("conllx: sentence %d: partition %d out of range [0, %d)", p.index, idx, n)
		return p.err
	}

	if err := p.writers[idx].WriteSentence(s); err != nil {
		p.err = fmt.Errorf("conllx: partition %d: %w", idx, err)
		return p.err
	}

	p.index++
	return nil
}

// Written returns the number of sentences written.
func (p *PartitioningWriter) Written() int {
	return p.index
}
