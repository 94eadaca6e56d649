package runtime

import (
	"fmt"

	"github.com/christianalfoni/superfine-reactive-components/pkg/reactive"
)

// Token names a context channel between an ancestor that publishes and
// descendants that look it up. Tokens compare by identity; the name is
// for diagnostics only.
type Token struct {
	id   uint64
	name string
}

// NewToken creates a context token.
func NewToken(name string) *Token {
	return &Token{id: nextInstanceID(), name: name}
}

// Name returns the token's diagnostic name.
func (t *Token) Name() string { return t.name }

// Publish makes values available to descendants under token. Values are
// reactive records or plain maps, which are wrapped. Setup-only; an
// instance may publish each token once.
func Publish(token *Token, values ...any) {
	in := mustSetup("Publish")
	if _, dup := in.context[token]; dup {
		panic(fmt.Errorf("%w: %s", ErrDoublePublish, token.name))
	}
	recs := make([]*reactive.Record, 0, len(values))
	for _, v := range values {
		switch val := v.(type) {
		case *reactive.Record:
			recs = append(recs, val)
		case map[string]any:
			recs = append(recs, reactive.Wrap(val))
		default:
			panic(fmt.Errorf("runtime: Publish(%s) takes *reactive.Record or map[string]any, got %T", token.name, v))
		}
	}
	if in.context == nil {
		in.context = make(map[*Token][]*reactive.Record)
	}
	in.context[token] = recs
}

// Lookup walks the ancestor chain for the nearest publisher of token
// and returns a merged view over its published records. Setup-only;
// panics when no ancestor published the token.
func Lookup(token *Token) *ContextView {
	in := mustSetup("Lookup")
	for p := in.parent; p != nil; p = p.parent {
		if recs, ok := p.context[token]; ok {
			return &ContextView{token: token, records: recs}
		}
	}
	panic(fmt.Errorf("%w: %s", ErrTokenNotPublished, token.name))
}

// ContextView is a read-through merge over the records one publisher
// supplied. Reads hit the records live, in publish order with the
// first record holding a key winning, so later mutation of published
// state stays visible and tracked. Never a snapshot.
type ContextView struct {
	token   *Token
	records []*reactive.Record
}

// Get returns the value for key from the first record holding it,
// subscribing the current listener. Missing keys read as nil.
func (v *ContextView) Get(key string) any {
	for _, r := range v.records {
		if r.Has(key) {
			return r.Get(key)
		}
	}
	return nil
}

// Has reports whether any published record holds key, subscribing the
// current listener.
func (v *ContextView) Has(key string) bool {
	for _, r := range v.records {
		if r.Has(key) {
			return true
		}
	}
	return false
}
