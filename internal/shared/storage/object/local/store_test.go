package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestPutThenOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	obj, err := store.Put(ctx, "guest:abc", "solution.py", "text/x-python", strings.NewReader("print(1)\n"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if obj.Size != 9 || obj.ContentType != "text/x-python" {
		t.Fatalf("unexpected object: %+v", obj)
	}
	if !strings.HasSuffix(obj.Key, "_solution.py") {
		t.Fatalf("unexpected key: %s", obj.Key)
	}

	rc, err := store.Open(ctx, obj.Key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "print(1)\n" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../secret"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}
