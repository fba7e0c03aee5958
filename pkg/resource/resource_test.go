package resource

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	ferrors "github.com/matzehuels/fascia/pkg/errors"
	"github.com/matzehuels/fascia/pkg/scaffold"
)

func ids(rs []scaffold.ExternalResource) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestPageName(t *testing.T) {
	tests := []struct {
		page int
		want string
	}{
		{1, "slice_001.png"},
		{27, "slice_027.png"},
		{1001, "slice_1001.png"},
	}
	for _, tt := range tests {
		if got := PageName(tt.page); got != tt.want {
			t.Errorf("PageName(%d) = %q, want %q", tt.page, got, tt.want)
		}
	}
}

func TestOddPages(t *testing.T) {
	if got := OddPages(6); !slices.Equal(got, []int{1, 3, 5}) {
		t.Errorf("OddPages(6) = %v", got)
	}
	if got := OddPages(5); !slices.Equal(got, []int{1, 3, 5}) {
		t.Errorf("OddPages(5) = %v", got)
	}
	if got := OddPages(0); len(got) != 0 {
		t.Errorf("OddPages(0) = %v", got)
	}
}

func TestFromNames(t *testing.T) {
	got := FromNames([]string{"slice_005.png", "notes.txt", "slice_001.png", ".hidden.png", "slice_003.v2.png", "sub/slice_002.png"})
	want := []string{"slice_001", "slice_002", "slice_003", "slice_005"}
	if !slices.Equal(ids(got), want) {
		t.Errorf("ids = %v, want %v", ids(got), want)
	}
	r := got[2]
	if r.Name != "slice_003.v2.png" || r.Path != "slice_003.v2.png" || r.Type != scaffold.ResourceTypeImage {
		t.Errorf("resource = %+v", r)
	}
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	for _, page := range OddPages(5) {
		if err := os.WriteFile(filepath.Join(dir, PageName(page)), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "thumbs.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := NewDirSource(dir).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if want := []string{"slice_001", "slice_003", "slice_005"}; !slices.Equal(ids(got), want) {
		t.Errorf("ids = %v, want %v", ids(got), want)
	}
}

func TestDirSourceMissing(t *testing.T) {
	got, err := NewDirSource(filepath.Join(t.TempDir(), "absent")).List(context.Background())
	if err != nil {
		t.Fatalf("missing directory should not fail: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("missing directory = %#v, want empty list", got)
	}
}

func TestStatic(t *testing.T) {
	s := Static(FromNames([]string{"b.png", "a.png"}))
	got, _ := s.List(context.Background())
	got[0].ID = "changed"
	if s[0].ID != "a" {
		t.Error("Static.List must return a copy")
	}
}

func TestNewBucketSourceValidation(t *testing.T) {
	valid := BucketConfig{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "slices"}
	tests := []struct {
		name   string
		mutate func(*BucketConfig)
	}{
		{"no endpoint", func(c *BucketConfig) { c.Endpoint = " " }},
		{"no access key", func(c *BucketConfig) { c.AccessKey = "" }},
		{"no secret key", func(c *BucketConfig) { c.SecretKey = "" }},
		{"no bucket", func(c *BucketConfig) { c.Bucket = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if _, err := NewBucketSource(cfg); !ferrors.Is(err, ferrors.ErrCodeInvalidConfig) {
				t.Errorf("NewBucketSource: %v", err)
			}
		})
	}

	src, err := NewBucketSource(BucketConfig{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "slices", Prefix: "/torso/"})
	if err != nil {
		t.Fatalf("NewBucketSource: %v", err)
	}
	if got := src.String(); got != "s3://slices/torso/" {
		t.Errorf("String() = %q", got)
	}
}
