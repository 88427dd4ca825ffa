package summarize

import (
	"context"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	log "github.com/sirupsen/logrus"
)

const (
	// Inputs shorter than this are returned as-is, they carry nothing to
	// condense.
	minSummarizableLen = 10

	// Hard ceiling on any fallback output, in characters.
	maxFallbackLen = 100

	DefaultMaxLength = 50
	DefaultMinLength = 20
)

// Abstractive is the optional external summarizer the extractive ladder
// delegates to when none of its own strategies produce usable output.
// Implementations are expected to constrain repeated n-grams themselves.
type Abstractive interface {
	Summarize(ctx context.Context, text string, maxLength, minLength int) (string, error)
}

// Extractive condenses complaint text by selecting and trimming existing
// spans. It is deterministic for a given input and abstractive-availability
// state, and never returns empty output for non-empty input.
type Extractive struct {
	tokenizer   *sentences.DefaultSentenceTokenizer
	abstractive Abstractive
}

// New builds an extractive summarizer. abstractive may be nil, in which
// case the delegate rung of the ladder is skipped.
func New(abstractive Abstractive) *Extractive {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		log.Warnf("failed to load sentence tokenizer, first-sentence strategy disabled: %v", err)
		tokenizer = nil
	}
	return &Extractive{
		tokenizer:   tokenizer,
		abstractive: abstractive,
	}
}

// Summarize runs the strategy ladder: first sentence, single-fragment
// cleanup, first-fragment cleanup, abstractive delegate, raw fallback.
// maxLength and minLength bound the final summary in characters;
// non-positive values take the defaults.
func (s *Extractive) Summarize(ctx context.Context, text string, maxLength, minLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if minLength <= 0 {
		minLength = DefaultMinLength
	}

	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minSummarizableLen {
		return clip(trimmed, maxFallbackLen)
	}
	text = trimmed

	// Strategy A: the first sentence, when it is a reasonable length, is
	// the most direct summary of a complaint.
	if first := s.firstSentence(text); len([]rune(first)) > 15 && len([]rune(first)) < 200 {
		return first
	}

	fragments := splitFragments(text)

	// Strategy B: a single sentence with no terminator. Strip repeated
	// words and clip.
	if len(fragments) == 1 {
		return clip(dedupeWords(fragments[0]), maxFallbackLen)
	}

	// Strategy C: multiple fragments. Keep only the first, strip repeated
	// words, and normalize the ending.
	if len(fragments) > 1 {
		cleaned := dedupeWords(fragments[0])
		if len([]rune(cleaned)) > maxLength {
			return strings.TrimRight(clip(cleaned, maxLength), " ") + "."
		}
		if strings.HasSuffix(cleaned, ".") {
			return cleaned
		}
		return cleaned + "."
	}

	// Strategies exhausted without output: delegate to the abstractive
	// collaborator if one is wired.
	if s.abstractive != nil {
		summary, err := s.abstractive.Summarize(ctx, clip(text, 512), maxLength, minLength)
		if err != nil {
			log.Warnf("abstractive summarizer failed, using raw fallback: %v", err)
		} else if len(strings.TrimSpace(summary)) > 5 {
			return clip(strings.TrimSpace(summary), maxLength)
		}
	}

	// Final fallback: first fragment with a period, or the raw head.
	if first := strings.TrimSpace(strings.SplitN(text, ".", 2)[0]); first != "" {
		return first + "."
	}
	return clip(text, maxFallbackLen)
}

// firstSentence tokenizes text and returns the first sentence, or "" when
// the tokenizer finds none.
func (s *Extractive) firstSentence(text string) string {
	if s.tokenizer == nil {
		return ""
	}
	sents := s.tokenizer.Tokenize(text)
	if len(sents) == 0 {
		return ""
	}
	return strings.TrimSpace(sents[0].Text)
}

// splitFragments splits on "." and drops empty pieces.
func splitFragments(text string) []string {
	var fragments []string
	for _, f := range strings.Split(text, ".") {
		if f = strings.TrimSpace(f); f != "" {
			fragments = append(fragments, f)
		}
	}
	return fragments
}

// dedupeWords removes repeated words case-insensitively, keeping the first
// occurrence with its original casing.
func dedupeWords(sentence string) string {
	seen := make(map[string]bool)
	var unique []string
	for _, word := range strings.Fields(sentence) {
		key := strings.ToLower(word)
		if !seen[key] {
			unique = append(unique, word)
			seen[key] = true
		}
	}
	return strings.Join(unique, " ")
}

// clip truncates s to at most n characters (runes, not bytes).
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
