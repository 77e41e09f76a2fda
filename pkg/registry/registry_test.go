package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/arthur-debert/sedit/pkg/errors"
)

// fakeTransformer stands in for the transformer values the transform
// package stores.
type fakeTransformer struct {
	mode string
}

func TestNew(t *testing.T) {
	reg := New[fakeTransformer]()

	if reg == nil {
		t.Fatal("New() returned nil")
	}

	if reg.Len() != 0 {
		t.Errorf("New registry should be empty, got %d items", reg.Len())
	}
}

func TestRegister(t *testing.T) {
	reg := New[fakeTransformer]()

	t.Run("register valid item", func(t *testing.T) {
		err := reg.Register("substitute", fakeTransformer{mode: "substitute"})

		if err != nil {
			t.Fatalf("Register() error = %v, want nil", err)
		}

		if reg.Len() != 1 {
			t.Errorf("Len() = %d, want 1", reg.Len())
		}
	})

	t.Run("register with empty name", func(t *testing.T) {
		err := reg.Register("", fakeTransformer{})

		if !errors.IsErrorCode(err, errors.ErrInvalidInput) {
			t.Errorf("Register() with empty name should return ErrInvalidInput, got %v", err)
		}
	})

	t.Run("register duplicate", func(t *testing.T) {
		err := reg.Register("substitute", fakeTransformer{mode: "substitute"})

		if !errors.IsErrorCode(err, errors.ErrAlreadyExists) {
			t.Errorf("Register() duplicate should return ErrAlreadyExists, got %v", err)
		}
	})
}

func TestGet(t *testing.T) {
	reg := New[fakeTransformer]()
	_ = reg.Register("lines", fakeTransformer{mode: "lines"})

	t.Run("get existing item", func(t *testing.T) {
		got, err := reg.Get("lines")
		if err != nil {
			t.Fatalf("Get() error = %v, want nil", err)
		}
		if got.mode != "lines" {
			t.Errorf("Get() item mode = %q, want %q", got.mode, "lines")
		}
	})

	t.Run("get missing item", func(t *testing.T) {
		_, err := reg.Get("no-such-mode")
		if !errors.IsErrorCode(err, errors.ErrNotFound) {
			t.Errorf("Get() missing should return ErrNotFound, got %v", err)
		}
	})
}

func TestListIsSorted(t *testing.T) {
	reg := New[fakeTransformer]()
	for _, name := range []string{"substitute", "columns", "lines"} {
		_ = reg.Register(name, fakeTransformer{mode: name})
	}

	got := reg.List()
	want := []string{"columns", "lines", "substitute"}
	if len(got) != len(want) {
		t.Fatalf("List() returned %d names, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	reg := New[int]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("item-%d", n)
			_ = reg.Register(name, n)
			_, _ = reg.Get(name)
			_ = reg.List()
		}(i)
	}
	wg.Wait()

	if reg.Len() != 50 {
		t.Errorf("Len() = %d, want 50", reg.Len())
	}
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	reg := New[fakeTransformer]()
	reg.MustRegister("substitute", fakeTransformer{mode: "substitute"})

	defer func() {
		if recover() == nil {
			t.Error("MustRegister() should panic on duplicate registration")
		}
	}()
	reg.MustRegister("substitute", fakeTransformer{mode: "substitute"})
}
