package sparse

import "testing"

func TestMatrixSetAndGet(t *testing.T) {
	M := NewIntMatrix(10, 10, -1)
	M.Set(2, 3, 4711)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected M(2,3) = 4711, is %d", v)
	}
	if v := M.Value(3, 2); v != M.NullValue() {
		t.Errorf("expected M(3,2) to be null, is %d", v)
	}
	M.Add(2, 3, 123)
	if a, b := M.Values(2, 3); a != 4711 || b != 123 {
		t.Errorf("expected M(2,3) = (4711,123), is (%d,%d)", a, b)
	}
	if M.ValueCount() != 1 {
		t.Errorf("expected 1 position set, have %d", M.ValueCount())
	}
	M.Set(2, 3, 1)
	if a, b := M.Values(2, 3); a != 1 || b != M.NullValue() {
		t.Errorf("Set should replace both values, have (%d,%d)", a, b)
	}
}

func TestMatrixRowMajorOrder(t *testing.T) {
	M := NewIntMatrix(5, 5, DefaultNullValue)
	M.Set(4, 0, 1).Set(0, 4, 2).Set(2, 2, 3).Set(0, 1, 4).Add(2, 1, 5)
	var cells [][2]int
	M.Each(func(i, j int, a, b int32) {
		cells = append(cells, [2]int{i, j})
	})
	expected := [][2]int{{0, 1}, {0, 4}, {2, 1}, {2, 2}, {4, 0}}
	if len(cells) != len(expected) {
		t.Fatalf("expected %d cells, have %d", len(expected), len(cells))
	}
	for k := range cells {
		if cells[k] != expected[k] {
			t.Errorf("expected cell #%d to be %v, is %v", k, expected[k], cells[k])
		}
	}
}

func TestMatrixIndexOutOfRange(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for negative index")
		}
	}()
	M := NewIntMatrix(2, 2, DefaultNullValue)
	M.Set(-1, 0, 1)
}
