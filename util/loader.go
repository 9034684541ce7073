package util

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// MaskFile represents a rendered mask image file on disk.
type MaskFile struct {
	// Path is the path to the mask file.
	Path string
	// Data is the raw bytes of the mask file.
	Data []byte
	// Index is the sample index parsed from the file name.
	Index int
}

// LoadDirectoryMaskFiles reads all sample mask images from a directory.
// Files follow the sample_<index>.<ext> naming convention; anything else is
// ignored. Results are sorted by sample index.
//
// Arguments:
// - dir: Directory path containing mask image files.
//
// Returns:
// - []MaskFile: Slice of MaskFile, each containing the raw bytes of a mask image.
// - error: Error if loading fails.
func LoadDirectoryMaskFiles(dir string) ([]MaskFile, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var masks []MaskFile
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		ext := filepath.Ext(file.Name())
		switch ext {
		case ".jpg", ".jpeg", ".png", ".bmp":
			if !strings.HasPrefix(file.Name(), "sample_") {
				continue
			}
			index, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(file.Name(), "sample_"), ext))
			if err != nil {
				continue
			}
			maskPath := filepath.Join(dir, file.Name())
			data, readErr := os.ReadFile(maskPath)
			if readErr != nil {
				return nil, readErr
			}
			masks = append(masks, MaskFile{
				Path:  maskPath,
				Data:  data,
				Index: index,
			})
		}
	}

	sort.Slice(masks, func(i, j int) bool {
		return masks[i].Index < masks[j].Index
	})

	return masks, nil
}
