package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_MultipleSubscribersAllFire(t *testing.T) {
	r := newRegistry()

	var first, second int
	r.on("new_notification", func(json.RawMessage) { first++ })
	r.on("new_notification", func(json.RawMessage) { second++ })

	n := r.dispatch("new_notification", json.RawMessage(`{}`))

	assert.Equal(t, 2, n)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestRegistry_OffRemovesOnlyThatSubscription(t *testing.T) {
	r := newRegistry()

	var kept, removed int
	keep := r.on("new_message", func(json.RawMessage) { kept++ })
	drop := r.on("new_message", func(json.RawMessage) { removed++ })
	_ = keep

	r.off(drop)
	r.dispatch("new_message", json.RawMessage(`{}`))

	assert.Equal(t, 1, kept)
	assert.Equal(t, 0, removed)
}

func TestRegistry_HandlerReceivesPayload(t *testing.T) {
	r := newRegistry()

	var got string
	r.on("system_message", func(data json.RawMessage) { got = string(data) })
	r.dispatch("system_message", json.RawMessage(`{"title":"maintenance"}`))

	assert.JSONEq(t, `{"title":"maintenance"}`, got)
}

func TestRegistry_DispatchUnknownEvent(t *testing.T) {
	r := newRegistry()
	assert.Equal(t, 0, r.dispatch("nobody_listens", nil))

	// Removing a stale subscription must not panic either.
	sub := r.on("x", func(json.RawMessage) {})
	r.off(sub)
	r.off(sub)
}
