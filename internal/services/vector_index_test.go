package services

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestDeleteIndexIsIdempotent(t *testing.T) {
	// No client needed: the guards must short-circuit before any backend
	// call is attempted.
	svc := &qdrantIndexService{log: zap.NewNop()}

	// An index whose creation never succeeded.
	svc.DeleteIndex(context.Background(), nil)

	// An index that was already torn down.
	handle := &IndexHandle{Name: "resume_1", deleted: true}
	svc.DeleteIndex(context.Background(), handle)
	svc.DeleteIndex(context.Background(), handle)
}
