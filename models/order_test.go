package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderIsTerminal(t *testing.T) {
	tests := []struct {
		status   string
		terminal bool
	}{
		{OrderStatusProcessing, false},
		{OrderStatusDelivered, true},
		{OrderStatusCancelled, true},
		{"", false},
	}

	for _, tt := range tests {
		order := Order{Status: tt.status}
		assert.Equal(t, tt.terminal, order.IsTerminal(), "status %q", tt.status)
	}
}

func TestAllModelsCoversEveryTable(t *testing.T) {
	all := AllModels()
	assert.Len(t, all, 7)

	tables := make(map[string]bool)
	for _, m := range all {
		if named, ok := m.(interface{ TableName() string }); ok {
			tables[named.TableName()] = true
		}
	}

	for _, expected := range []string{"users", "products", "suppliers", "warehouses", "stock", "orders", "order_items"} {
		assert.True(t, tables[expected], "missing model for table %s", expected)
	}
}
