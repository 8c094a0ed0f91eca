//go:build cgo
// +build cgo

package embedding

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hyperjump/shirabe/pkg/utils"
	ort "github.com/yalue/onnxruntime_go"
)

var errONNXClosed = errors.New("onnx embedder is closed")

// Input and output names of sentence-transformers ONNX exports.
var (
	onnxInputNames  = []string{"input_ids", "attention_mask", "token_type_ids"}
	onnxOutputNames = []string{"last_hidden_state"}
)

// ONNXEmbedder runs a local BERT-style sentence model through ONNX Runtime and
// mean-pools the token states over the attention mask. It requires CGO and the
// onnxruntime shared library. Run is serialized; the embedder is safe to share.
type ONNXEmbedder struct {
	mu         sync.Mutex
	session    *ort.AdvancedSession
	tokenizer  Tokenizer
	dimensions int
	seqLen     int

	// inputs holds input_ids, attention_mask and token_type_ids, in that order.
	inputs []*ort.Tensor[int64]
	hidden *ort.Tensor[float32]
}

// NewONNXEmbedder loads the model at modelPath. dimensions is the model's hidden size
// and maxTokens its sequence length, including the CLS and SEP tokens.
func NewONNXEmbedder(modelPath string, dimensions, maxTokens int) (*ONNXEmbedder, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("onnx: dimensions must be positive, got %d", dimensions)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
		}
	}

	e := &ONNXEmbedder{tokenizer: &SimpleTokenizer{}, dimensions: dimensions}
	ids, mask, types := e.tokenizer.Tokenize("", maxTokens)
	e.seqLen = len(ids)

	shape := ort.NewShape(1, int64(e.seqLen))
	for i, data := range [][]int64{ids, mask, types} {
		t, err := ort.NewTensor(shape, data)
		if err != nil {
			e.release()
			return nil, fmt.Errorf("failed to create %s tensor: %w", onnxInputNames[i], err)
		}
		e.inputs = append(e.inputs, t)
	}
	hidden, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(e.seqLen), int64(dimensions)))
	if err != nil {
		e.release()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}
	e.hidden = hidden

	ins := make([]ort.ArbitraryTensor, len(e.inputs))
	for i, t := range e.inputs {
		ins[i] = t
	}
	session, err := ort.NewAdvancedSession(modelPath, onnxInputNames, onnxOutputNames,
		ins, []ort.ArbitraryTensor{e.hidden}, nil)
	if err != nil {
		e.release()
		return nil, fmt.Errorf("failed to create ONNX session for %s: %w", modelPath, err)
	}
	e.session = session
	return e, nil
}

// Embed runs the model on text and returns the unit-length pooled vector.
func (e *ONNXEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil, errONNXClosed
	}

	ids, mask, types := e.tokenizer.Tokenize(text, e.seqLen)
	for i, data := range [][]int64{ids, mask, types} {
		copy(e.inputs[i].GetData(), data)
	}
	if err := e.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	vec := meanPool(e.hidden.GetData(), mask, e.dimensions)
	utils.NormalizeL2(vec)
	return vec, nil
}

// EmbedBatch embeds texts one at a time; the session has a fixed batch size of one.
func (e *ONNXEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out = append(out, vec)
	}
	return out, nil
}

// Dimensions returns the hidden size of the model.
func (e *ONNXEmbedder) Dimensions() int {
	return e.dimensions
}

// Close destroys the session and its tensors. Later calls to Embed fail.
func (e *ONNXEmbedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	var err error
	if e.session != nil {
		err = e.session.Destroy()
		e.session = nil
	}
	e.release()
	return err
}

func (e *ONNXEmbedder) release() {
	for _, t := range e.inputs {
		_ = t.Destroy()
	}
	e.inputs = nil
	if e.hidden != nil {
		_ = e.hidden.Destroy()
		e.hidden = nil
	}
}
