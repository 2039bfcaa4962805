package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerializeDeserializeVector(t *testing.T) {
	tests := []struct {
		name   string
		vector []float32
	}{
		{name: "typical vector", vector: []float32{0.1, -0.5, 2.25, 0}},
		{name: "single element", vector: []float32{42.0}},
		{name: "empty", vector: []float32{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := SerializeVector(tt.vector)
			assert.Len(t, blob, len(tt.vector)*4)

			got := DeserializeVector(blob)
			assert.Equal(t, tt.vector, got)
		})
	}
}
