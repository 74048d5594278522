package qdg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartition(t *testing.T) {
	t.Run("fresh qubits are singletons", func(t *testing.T) {
		p := newPartition()
		assert.False(t, p.sameGroup("a", "b"))
	})

	t.Run("union joins groups transitively", func(t *testing.T) {
		p := newPartition()
		p.union("a", "b")
		p.union("b", "c")

		assert.True(t, p.sameGroup("a", "c"))
		assert.False(t, p.sameGroup("a", "d"))
	})

	t.Run("detach isolates a qubit but not its partners", func(t *testing.T) {
		p := newPartition()
		p.union("a", "b")
		p.union("b", "c")

		p.detach("b")

		assert.False(t, p.sameGroup("a", "b"))
		assert.False(t, p.sameGroup("b", "c"))
		assert.True(t, p.sameGroup("a", "c"))
	})

	t.Run("detached qubit can re-entangle", func(t *testing.T) {
		p := newPartition()
		p.union("a", "b")
		p.detach("b")
		p.union("b", "c")

		assert.True(t, p.sameGroup("b", "c"))
		assert.False(t, p.sameGroup("a", "b"))
	})
}
