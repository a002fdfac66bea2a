package index

import "testing"

func TestOrderedMapIntRange(t *testing.T) {
	m := newOrderedMap[int, int]()
	m.add(2700, 1)
	m.add(2750, 2)
	m.add(2900, 3)

	got := m.Range(2700, 2800)
	want := map[int]bool{1: true, 2: true}
	if len(got) != len(want) {
		t.Fatalf("Range(2700,2800) = %v, want keys 1 and 2", got)
	}
	for _, v := range got {
		if !want[v] {
			t.Errorf("unexpected value %d in range result", v)
		}
	}
}

func TestOrderedMapStringRange(t *testing.T) {
	m := newOrderedMap[string, int]()
	m.add("2020.01.01", 1)
	m.add("2021.06.15", 2)
	m.add("2023.12.31", 3)

	got := m.Range("2021.01.01", "2021.12.31")
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("Range(2021) = %v, want [2]", got)
	}
}

func TestOrderedMapKeysSorted(t *testing.T) {
	m := newOrderedMap[int, int]()
	m.add(5, 1)
	m.add(1, 2)
	m.add(3, 3)
	keys := m.Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("Keys() not sorted: %v", keys)
		}
	}
}

func TestOrderedMapAt(t *testing.T) {
	m := newOrderedMap[int, int]()
	m.add(10, 1)
	m.add(10, 2)
	got := m.At(10)
	if len(got) != 2 {
		t.Errorf("At(10) = %v, want 2 entries", got)
	}
	if got := m.At(999); len(got) != 0 {
		t.Errorf("At(missing) = %v, want empty", got)
	}
}
