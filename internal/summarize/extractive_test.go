package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeAbstractive struct {
	summary string
	err     error
	called  bool
}

func (f *fakeAbstractive) Summarize(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	f.called = true
	return f.summary, f.err
}

func TestSummarize_TooShortReturnedVerbatim(t *testing.T) {
	s := New(nil)

	assert.Equal(t, "short", s.Summarize(context.Background(), "short", 50, 20))
	assert.Equal(t, "", s.Summarize(context.Background(), "   ", 50, 20))
}

func TestSummarize_FirstSentenceRoundTrip(t *testing.T) {
	s := New(nil)

	// A single reasonable sentence survives summarization unchanged,
	// trailing period included.
	input := "Streetlight not working on Fifth Avenue."
	assert.Equal(t, input, s.Summarize(context.Background(), input, 50, 20))
}

func TestSummarize_FirstSentenceOfMany(t *testing.T) {
	s := New(nil)

	input := "Garbage is piling up near the school gate. It has been there for two weeks. Nobody collects it."
	assert.Equal(t, "Garbage is piling up near the school gate.", s.Summarize(context.Background(), input, 50, 20))
}

func TestSummarize_DeduplicatesRepeatedWords(t *testing.T) {
	s := New(nil)

	// First sentence is too short for the first-sentence strategy, so the
	// first fragment is cleaned up instead.
	got := s.Summarize(context.Background(), "Bad bad road. Fix fix it now please.", 50, 20)
	assert.Equal(t, "Bad road.", got)
}

func TestSummarize_SingleFragmentDeduped(t *testing.T) {
	s := New(nil)

	// No sentence terminator and too long for the first-sentence strategy:
	// the whole text is one fragment and repeated words collapse.
	input := strings.TrimSpace(strings.Repeat("flood ", 40))
	assert.Equal(t, "flood", s.Summarize(context.Background(), input, 50, 20))
}

func TestSummarize_LongFirstFragmentTruncated(t *testing.T) {
	s := New(nil)

	var sb strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&sb, "w%02d ", i)
	}
	first := strings.TrimSpace(sb.String()) // 199 chars, all words distinct
	input := first + ". Second sentence here."

	got := s.Summarize(context.Background(), input, 50, 20)

	assert.Equal(t, "w00 w01 w02 w03 w04 w05 w06 w07 w08 w09 w10 w11 w1.", got)
	assert.LessOrEqual(t, len(got), 51)
}

func TestSummarize_AbstractiveDelegate(t *testing.T) {
	// Only punctuation: every extractive strategy comes up empty and the
	// ladder reaches the delegate.
	input := "..........."

	fake := &fakeAbstractive{summary: "A mocked summary from the model"}
	s := New(fake)
	got := s.Summarize(context.Background(), input, 50, 20)

	assert.True(t, fake.called)
	assert.Equal(t, "A mocked summary from the model", got)
}

func TestSummarize_AbstractiveFailureFallsThrough(t *testing.T) {
	input := "..........."

	fake := &fakeAbstractive{err: errors.New("model unavailable")}
	s := New(fake)
	got := s.Summarize(context.Background(), input, 50, 20)

	// No fragment exists, so the raw head comes back.
	assert.Equal(t, input, got)
}

func TestSummarize_NonEmptyForNonEmptyInput(t *testing.T) {
	s := New(nil)

	inputs := []string{
		"Pothole on Main Street causing accidents.",
		"water water water everywhere",
		"Broken pole fallen across road. Cars cannot pass. Very dangerous.",
	}
	for _, input := range inputs {
		assert.NotEmpty(t, s.Summarize(context.Background(), input, 50, 20))
	}
}
