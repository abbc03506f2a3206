package checkpoint

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	bolt "go.etcd.io/bbolt"
)

func openTestDB(t *testing.T) *bolt.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := bolt.Open(path, 0644, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(path)
	})
	return db
}

func TestSaveLoad(t *testing.T) {
	db := openTestDB(t)
	io := NewIO(db, []byte("h2"), 0)

	in := &Data{
		Energy:    -1.1167143251,
		Density:   []float64{0.6, 0.6, 0.6, 0.6},
		N:         2,
		Iteration: 7,
		Converged: true,
		Final:     true,
	}
	if err := io.Save(in); err != nil {
		t.Fatal(err)
	}

	out, err := io.GetData()
	if err != nil {
		t.Fatal(err)
	}
	if out == nil {
		t.Fatal("expected stored snapshot")
	}
	if math.Abs(out.Energy-in.Energy) > 1e-15 {
		t.Errorf("energy: got %v, want %v", out.Energy, in.Energy)
	}
	if out.N != in.N || out.Iteration != in.Iteration || !out.Converged || !out.Final {
		t.Errorf("metadata mismatch: %+v", out)
	}
	if len(out.Density) != len(in.Density) {
		t.Fatalf("density length: got %d, want %d", len(out.Density), len(in.Density))
	}
	for i := range in.Density {
		if out.Density[i] != in.Density[i] {
			t.Errorf("density[%d]: got %v, want %v", i, out.Density[i], in.Density[i])
		}
	}
}

func TestGetDataEmpty(t *testing.T) {
	db := openTestDB(t)
	io := NewIO(db, []byte("missing"), 0)

	out, err := io.GetData()
	if err != nil {
		t.Fatal(err)
	}
	if out != nil {
		t.Errorf("expected nil snapshot, got %+v", out)
	}
}

func TestNilDB(t *testing.T) {
	io := NewIO(nil, []byte("x"), 0)
	if err := io.Save(&Data{Energy: 1}); err != nil {
		t.Errorf("save to nil db: %v", err)
	}
	out, err := io.GetData()
	if err != nil || out != nil {
		t.Errorf("load from nil db: got %+v, %v", out, err)
	}
}

func TestOld(t *testing.T) {
	io := NewIO(nil, []byte("x"), 3600)
	io.SetNow()
	if io.Old() {
		t.Error("fresh checkpoint reported as old")
	}
	io = NewIO(nil, []byte("x"), 0)
	if !io.Old() {
		t.Error("zero-interval checkpoint should always be old")
	}
}

func TestOverwriteKeepsLatest(t *testing.T) {
	db := openTestDB(t)
	io := NewIO(db, []byte("run"), 0)

	for it := 1; it <= 3; it++ {
		d := &Data{Energy: -float64(it), Density: []float64{1}, N: 1, Iteration: it}
		if err := io.Save(d); err != nil {
			t.Fatal(err)
		}
	}
	out, err := io.GetData()
	if err != nil {
		t.Fatal(err)
	}
	if out.Iteration != 3 || out.Energy != -3 {
		t.Errorf("expected latest snapshot, got %+v", out)
	}
}
