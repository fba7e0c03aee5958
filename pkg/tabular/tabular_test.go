package tabular

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	ferrors "github.com/matzehuels/fascia/pkg/errors"
)

func TestReadAnchors(t *testing.T) {
	in := "id,name,x,y,z,notes\n" +
		"a1,Superficial fascia,1.5,-2,0,ignored\n" +
		"a2,Deep fascia, 3 ,4e1,0.25,\n"

	anchors, err := ReadAnchors(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadAnchors: %v", err)
	}
	if len(anchors) != 2 {
		t.Fatalf("anchors = %d, want 2", len(anchors))
	}
	a := anchors[1]
	if a.ID != "a2" || a.Name != "Deep fascia" {
		t.Errorf("anchor = %+v", a)
	}
	if *a.Layout.X != 3 || *a.Layout.Y != 40 || *a.Layout.Z != 0.25 {
		t.Errorf("layout = %v %v %v", *a.Layout.X, *a.Layout.Y, *a.Layout.Z)
	}
}

func TestReadAnchorsColumnOrder(t *testing.T) {
	in := "\ufeffz,y,x,name,id\n7,8,9,n,id1\n"
	anchors, err := ReadAnchors(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadAnchors: %v", err)
	}
	if a := anchors[0]; a.ID != "id1" || *a.Layout.X != 9 || *a.Layout.Z != 7 {
		t.Errorf("anchor = %+v", a)
	}
}

func TestReadAnchorsErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code ferrors.Code
	}{
		{"empty", "", ferrors.ErrCodeMissingColumn},
		{"missing column", "id,name,x,y\na,b,1,2\n", ferrors.ErrCodeMissingColumn},
		{"not a number", "id,name,x,y,z\na,b,1,two,3\n", ferrors.ErrCodeInvalidRow},
		{"empty coordinate", "id,name,x,y,z\na,b,1,,3\n", ferrors.ErrCodeInvalidRow},
		{"nan", "id,name,x,y,z\na,b,1,2,NaN\n", ferrors.ErrCodeInvalidRow},
		{"inf", "id,name,x,y,z\na,b,1,2,+Inf\n", ferrors.ErrCodeInvalidRow},
		{"short row", "id,name,x,y,z\na,b,1,2\n", ferrors.ErrCodeInvalidRow},
		{"bad quoting", "id,name,x,y,z\na,\"b,1,2,3\n", ferrors.ErrCodeInvalidRow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchors, err := ReadAnchors(strings.NewReader(tt.in))
			if err == nil {
				t.Fatalf("expected error, got %d anchors", len(anchors))
			}
			if !ferrors.Is(err, tt.code) {
				t.Errorf("error code = %q, want %q (%v)", ferrors.GetCode(err), tt.code, err)
			}
			if anchors != nil {
				t.Error("failed load must not return partial rows")
			}
		})
	}
}

func TestReadWires(t *testing.T) {
	in := "id,source,target\n1,a1,a2\nx9,a2,missing\n"
	wires, err := ReadWires(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadWires: %v", err)
	}
	if len(wires) != 2 {
		t.Fatalf("wires = %d, want 2", len(wires))
	}
	if wires[0].ID != "w_1" || wires[0].Source != "a1" || wires[0].Target != "a2" {
		t.Errorf("wire = %+v", wires[0])
	}
	if wires[1].ID != "w_x9" || wires[1].Target != "missing" {
		t.Errorf("dangling wire must load unchanged: %+v", wires[1])
	}
}

func TestReadWiresHeaderOnly(t *testing.T) {
	wires, err := ReadWires(strings.NewReader("id,source,target\n"))
	if err != nil {
		t.Fatal(err)
	}
	if wires == nil || len(wires) != 0 {
		t.Errorf("header-only table = %#v, want empty list", wires)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadAnchors(filepath.Join(dir, "nodes.csv"))
	if !ferrors.Is(err, ferrors.ErrCodeFileNotFound) {
		t.Errorf("LoadAnchors missing file: %v", err)
	}
	_, err = LoadWires(filepath.Join(dir, "edges.csv"))
	if !ferrors.IsNotFound(err) {
		t.Errorf("LoadWires missing file: %v", err)
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	nodes := filepath.Join(dir, "nodes.csv")
	edges := filepath.Join(dir, "edges.csv")
	if err := os.WriteFile(nodes, []byte("id,name,x,y,z\na,A,0,0,0\nb,B,1,1,0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(edges, []byte("id,source,target\n7,a,b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	anchors, err := LoadAnchors(nodes)
	if err != nil || len(anchors) != 2 {
		t.Fatalf("LoadAnchors = %d, %v", len(anchors), err)
	}
	wires, err := LoadWires(edges)
	if err != nil || len(wires) != 1 || wires[0].ID != "w_7" {
		t.Fatalf("LoadWires = %+v, %v", wires, err)
	}
}

func TestLoadMalformedNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodes.csv")
	if err := os.WriteFile(path, []byte("id,name,x,y,z\na,A,0,0,zero\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadAnchors(path)
	if err == nil || !strings.Contains(err.Error(), path) || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name file and line: %v", err)
	}
}
