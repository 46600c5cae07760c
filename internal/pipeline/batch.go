package pipeline

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ItemStatus is the outcome of one file in a batch.
type ItemStatus string

const (
	StatusCompleted ItemStatus = "completed"
	StatusFailed    ItemStatus = "failed"
)

// BatchItem reports the conversion of one file. Exactly one of Result and Error
// is set.
type BatchItem struct {
	Filename string      `json:"filename"`
	Status   ItemStatus  `json:"status"`
	Result   *Conversion `json:"result,omitempty"`
	Error    string      `json:"error,omitempty"`
	err      error
}

// Err returns the conversion error, if any.
func (i BatchItem) Err() error { return i.err }

// Batch is the outcome of converting several files together.
type Batch struct {
	ID        string      `json:"batch_id"`
	Items     []BatchItem `json:"results"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

// ConvertBatch converts reqs with bounded concurrency. A failing file does not
// stop the others; items are returned in request order.
func (p *Pipeline) ConvertBatch(ctx context.Context, reqs []Request) *Batch {
	b := &Batch{
		ID:    uuid.NewString(),
		Items: make([]BatchItem, len(reqs)),
	}
	log := p.log.With("batch_id", b.ID)
	log.Info("batch started", "files", len(reqs), "workers", p.workers)

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			item := BatchItem{Filename: req.Filename}
			conv, err := p.Convert(ctx, req)
			if err != nil {
				item.Status = StatusFailed
				item.Error = err.Error()
				item.err = err
			} else {
				item.Status = StatusCompleted
				item.Result = conv
			}
			b.Items[i] = item
			return nil
		})
	}
	_ = g.Wait()

	for _, item := range b.Items {
		if item.Status == StatusCompleted {
			b.Succeeded++
		} else {
			b.Failed++
		}
	}
	log.Info("batch finished", "succeeded", b.Succeeded, "failed", b.Failed)
	return b
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

// docID is a short, stable identifier for a document's content.
func docID(data []byte) string {
	return ContentHashHex(data)[:16]
}
