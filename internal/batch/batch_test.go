package batch

import (
	"errors"
	"iter"
	"reflect"
	"testing"
)

func collect[T any](seq iter.Seq[[]T]) [][]T {
	var out [][]T
	for b := range seq {
		out = append(out, b)
	}
	return out
}

func TestBatched(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		size  int
		want  [][]int
	}{
		{
			name:  "uneven final batch",
			input: []int{1, 2, 3, 4, 5},
			size:  2,
			want:  [][]int{{1, 2}, {3, 4}, {5}},
		},
		{
			name:  "exact multiple",
			input: []int{1, 2, 3, 4},
			size:  2,
			want:  [][]int{{1, 2}, {3, 4}},
		},
		{
			name:  "size larger than input",
			input: []int{1, 2},
			size:  10,
			want:  [][]int{{1, 2}},
		},
		{
			name:  "size one",
			input: []int{1, 2, 3},
			size:  1,
			want:  [][]int{{1}, {2}, {3}},
		},
		{
			name:  "empty input yields no batches",
			input: []int{},
			size:  2,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := BatchedSlice(tt.input, tt.size)
			if err != nil {
				t.Fatalf("BatchedSlice() error = %v", err)
			}
			got := collect(seq)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BatchedSlice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBatched_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := BatchedSlice([]int{1, 2, 3}, size)
		if !errors.Is(err, ErrInvalidBatchSize) {
			t.Errorf("BatchedSlice(size=%d) error = %v, want ErrInvalidBatchSize", size, err)
		}
	}
}

func TestBatched_Reconstruction(t *testing.T) {
	// Concatenating the batches in order reconstructs the input exactly,
	// for every size
	input := []string{"a", "b", "c", "d", "e", "f", "g"}
	for size := 1; size <= len(input)+1; size++ {
		seq, err := BatchedSlice(input, size)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}

		var rebuilt []string
		for _, b := range collect(seq) {
			rebuilt = append(rebuilt, b...)
		}
		if !reflect.DeepEqual(rebuilt, input) {
			t.Errorf("size %d: reconstruction = %v, want %v", size, rebuilt, input)
		}
	}
}

func TestBatched_BatchLengths(t *testing.T) {
	seq, err := BatchedSlice([]int{1, 2, 3, 4, 5, 6, 7}, 3)
	if err != nil {
		t.Fatal(err)
	}
	batches := collect(seq)
	for i, b := range batches {
		if i < len(batches)-1 && len(b) != 3 {
			t.Errorf("batch %d length = %d, want 3", i, len(b))
		}
	}
	if last := batches[len(batches)-1]; len(last) == 0 || len(last) > 3 {
		t.Errorf("last batch length = %d, want 1..3", len(last))
	}
}

func TestBatched_InfiniteSource(t *testing.T) {
	naturals := func(yield func(int) bool) {
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	}

	seq, err := Batched(iter.Seq[int](naturals), 3)
	if err != nil {
		t.Fatal(err)
	}

	var got [][]int
	for b := range seq {
		got = append(got, b)
		if len(got) == 4 {
			break
		}
	}

	want := [][]int{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, {9, 10, 11}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Batched over infinite source = %v, want %v", got, want)
	}
}

func TestBatched_Lazy(t *testing.T) {
	// The source must be pulled batch by batch, not drained up front
	pulled := 0
	source := func(yield func(int) bool) {
		for i := 0; i < 100; i++ {
			pulled++
			if !yield(i) {
				return
			}
		}
	}

	seq, err := Batched(iter.Seq[int](source), 10)
	if err != nil {
		t.Fatal(err)
	}

	for range seq {
		break // consume exactly one batch
	}

	if pulled > 10 {
		t.Errorf("source pulled %d elements for one batch of 10", pulled)
	}
}
