package pak

import (
	"bytes"
	"fmt"

	"github.com/ftrvxmtrx/tga"
)

// PreviewTGA decodes a .tga file body extracted from an archive and
// reports its pixel dimensions, for a listing tool to print alongside an
// entry's name and size without writing the decoded image anywhere.
func PreviewTGA(data []byte) (width, height int, err error) {
	img, err := tga.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("pak: decode tga preview: %w", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

// IsTGA reports whether name's extension marks it as a .tga entry worth
// routing through PreviewTGA.
func IsTGA(name string) bool {
	return len(name) >= 4 && (name[len(name)-4:] == ".tga" || name[len(name)-4:] == ".TGA")
}
