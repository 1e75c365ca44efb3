package filestore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Hugo9809/pdfcraft/core"
)

// Interface compliance (compile-time assertions)
var _ core.FileStore = (*InMemoryStore)(nil)

func TestInMemoryFileStore_SaveGetIsolation(t *testing.T) {
	svc := NewInMemoryStore()
	ctx := context.Background()
	data := []byte("hello")
	if err := svc.Save(ctx, "a.pdf", core.File{Data: data}); err != nil {
		t.Fatalf("save: %v", err)
	}
	// mutate original slice
	data[0] = 'H'
	out, err := svc.Load(ctx, "a.pdf")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(out.Data) != "hello" { // should not reflect mutation
		t.Fatalf("expected 'hello', got %q", string(out.Data))
	}
	// mutate returned slice
	out.Data[0] = 'x'
	out2, _ := svc.Load(ctx, "a.pdf")
	if string(out2.Data) != "hello" {
		t.Fatalf("expected isolation, got %q", string(out2.Data))
	}
}

func TestInMemoryFileStore_OverwriteIsTotal(t *testing.T) {
	svc := NewInMemoryStore()
	ctx := context.Background()
	if err := svc.Save(ctx, "n", core.File{Data: []byte("first version, long")}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Save(ctx, "n", core.File{Data: []byte("b2")}); err != nil {
		t.Fatal(err)
	}
	out, err := svc.Load(ctx, "n")
	if err != nil {
		t.Fatal(err)
	}
	if string(out.Data) != "b2" {
		t.Fatalf("expected total overwrite, got %q", string(out.Data))
	}
}

func TestInMemoryFileStore_NotFoundAndIdempotentDelete(t *testing.T) {
	svc := NewInMemoryStore()
	ctx := context.Background()
	if _, err := svc.Load(ctx, "never"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "never"); err != nil {
		t.Fatalf("delete of absent name should succeed, got %v", err)
	}
	if err := svc.Save(ctx, "n", core.File{Data: []byte("x")}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, "n"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Load(ctx, "n"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestInMemoryFileStore_Concurrency(t *testing.T) {
	svc := NewInMemoryStore()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("f%d", i%10)
			if err := svc.Save(ctx, name, core.File{Data: []byte("data")}); err != nil {
				t.Errorf("save err: %v", err)
			}
			_, _ = svc.List(ctx)
		}()
	}
	wg.Wait()
	infos, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) == 0 {
		t.Fatalf("expected some blobs, got 0")
	}
}
