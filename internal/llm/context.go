package llm

import "context"

type callInfoKey struct{}

// CallInfo labels a provider call for the request log.
type CallInfo struct {
	// Purpose names the consumer, e.g. "question-gen" or "cli-generate".
	Purpose string

	// Section is the question section the call was made for, if any.
	Section string
}

// WithCallInfo attaches call labels to the context for event logging.
func WithCallInfo(ctx context.Context, info CallInfo) context.Context {
	return context.WithValue(ctx, callInfoKey{}, info)
}

// CallInfoFrom extracts the call labels from the context. Purpose is
// "unknown" when no labels were attached.
func CallInfoFrom(ctx context.Context) CallInfo {
	if v, ok := ctx.Value(callInfoKey{}).(CallInfo); ok {
		if v.Purpose == "" {
			v.Purpose = "unknown"
		}
		return v
	}
	return CallInfo{Purpose: "unknown"}
}
