// Package resource lists externally produced background images.
//
// The images come from a document-to-image extraction step that runs
// outside this module: one raster image per odd page, named by
// [PageName]. A [Source] returns them as scaffold external resources in
// extraction order (ascending filename), which is the order the binder
// pairs against.
package resource

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/matzehuels/fascia/pkg/scaffold"
)

// ImageExt is the file extension of extracted images.
const ImageExt = ".png"

// Source lists external resources in extraction order.
type Source interface {
	List(ctx context.Context) ([]scaffold.ExternalResource, error)
}

// PageName returns the image filename for a 1-based page number.
func PageName(page int) string {
	return fmt.Sprintf("slice_%03d%s", page, ImageExt)
}

// OddPages returns the 1-based odd page numbers of a document with n pages,
// the pages that the extraction step renders.
func OddPages(n int) []int {
	pages := make([]int, 0, (n+1)/2)
	for p := 1; p <= n; p += 2 {
		pages = append(pages, p)
	}
	return pages
}

// FromNames converts filenames into image resources. Names without the
// image extension are skipped; the rest are sorted. The resource id is the
// base name up to its first dot.
func FromNames(names []string) []scaffold.ExternalResource {
	var images []string
	for _, n := range names {
		base := path.Base(n)
		if strings.HasSuffix(base, ImageExt) && !strings.HasPrefix(base, ".") {
			images = append(images, base)
		}
	}
	slices.Sort(images)

	out := make([]scaffold.ExternalResource, 0, len(images))
	for _, name := range images {
		id, _, _ := strings.Cut(name, ".")
		out = append(out, scaffold.ExternalResource{
			ID:   id,
			Name: name,
			Path: name,
			Type: scaffold.ResourceTypeImage,
		})
	}
	return out
}

// Static is a fixed resource list, useful for tests and callers that
// already know their images.
type Static []scaffold.ExternalResource

// List returns a copy of the list.
func (s Static) List(context.Context) ([]scaffold.ExternalResource, error) {
	return slices.Clone([]scaffold.ExternalResource(s)), nil
}
