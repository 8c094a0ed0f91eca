package embedding

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Tokenizer produces token IDs for BERT-style models (input_ids, attention_mask, token_type_ids).
type Tokenizer interface {
	Tokenize(text string, maxTokens int) (inputIDs, attentionMask, tokenTypeIDs []int64)
}

// BERT special tokens and vocabulary size used by SimpleTokenizer.
const (
	tokenCLS   = 101
	tokenSEP   = 102
	vocabSize  = 30000
	vocabFirst = 1000
)

// SimpleTokenizer is a word-split tokenizer with hash-based token IDs. It has no
// vocabulary file; IDs land in the ordinary word range of a BERT vocabulary.
type SimpleTokenizer struct{}

// Tokenize splits text into words and produces padded token IDs up to maxTokens.
func (t *SimpleTokenizer) Tokenize(text string, maxTokens int) (inputIDs, attentionMask, tokenTypeIDs []int64) {
	if maxTokens <= 1 {
		maxTokens = 256
	}
	inputIDs = make([]int64, maxTokens)
	attentionMask = make([]int64, maxTokens)
	tokenTypeIDs = make([]int64, maxTokens)

	inputIDs[0] = tokenCLS
	attentionMask[0] = 1

	pos := 1
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if pos >= maxTokens-1 {
			break
		}
		inputIDs[pos] = TokenID(word)
		attentionMask[pos] = 1
		pos++
	}
	inputIDs[pos] = tokenSEP
	attentionMask[pos] = 1
	return inputIDs, attentionMask, tokenTypeIDs
}

// TokenID returns a deterministic token ID for word.
func TokenID(word string) int64 {
	return vocabFirst + int64(xxhash.Sum64String(word)%(vocabSize-vocabFirst))
}
