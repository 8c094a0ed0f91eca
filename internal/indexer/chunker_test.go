package indexer

import (
	"reflect"
	"testing"
)

func TestChunker_Chunk(t *testing.T) {
	c := NewChunker(3, 1)
	got := c.Chunk("one two three four five six seven")
	want := []string{"one two three", "three four five", "five six seven"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestChunker_ChunkShortTextUnchanged(t *testing.T) {
	c := NewChunker(5, 1)
	got := c.Chunk("  two  words ")
	if !reflect.DeepEqual(got, []string{"  two  words "}) {
		t.Errorf("got %q", got)
	}
}

func TestChunker_ChunkEmpty(t *testing.T) {
	c := NewChunker(5, 1)
	if chunks := c.Chunk("   \n\t  "); chunks != nil {
		t.Errorf("empty text should return nil, got %v", chunks)
	}
}

func TestChunker_Disabled(t *testing.T) {
	var nilChunker *Chunker
	for _, c := range []*Chunker{NewChunker(0, 0), nilChunker} {
		if c.Enabled() {
			t.Error("expected disabled")
		}
		got := c.Chunk("a b c d e f")
		if len(got) != 1 {
			t.Errorf("disabled chunker split text: %q", got)
		}
	}
}

func TestChunker_OverlapNotSmallerThanSize(t *testing.T) {
	c := NewChunker(2, 5)
	got := c.Chunk("a b c")
	want := []string{"a b", "b c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}
