package memory_test

import (
	"testing"

	"github.com/aretw0/riggen/pkg/adapters/memory"
	"github.com/aretw0/riggen/pkg/ports"
)

// Ensure Store implements ResultStore
var _ ports.ResultStore = (*memory.Store)(nil)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunResultStoreContract(t, store)
}
