package intelligence

import "context"

// ReplyDrafter turns a drafting prompt into reply text. Implementations may
// call out to a model; callers always keep a deterministic fallback.
type ReplyDrafter interface {
	DraftReply(ctx context.Context, prompt string) (string, error)
}
