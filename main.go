package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/sketchlab/go-vectorize/cvio"
	"github.com/sketchlab/go-vectorize/export"
	"github.com/sketchlab/go-vectorize/inference"
	"github.com/sketchlab/go-vectorize/pipeline"
	"github.com/sketchlab/go-vectorize/raster"
	"github.com/sketchlab/go-vectorize/util"
)

const (
	// DefaultOutputDir is where sample SVGs land when -out is not given.
	DefaultOutputDir = "vectorized_svgs"
	// DefaultWorkers is the batch fan-out width.
	DefaultWorkers = 4
)

func main() {
	var (
		masksDir  string
		outDir    string
		modelPath string
		ortLib    string
		proximity float64
		angle     float64
		binarize  float64
		workers   int
	)
	flag.StringVar(&masksDir, "masks", "", "Directory of mask images named sample_<index>.<ext>")
	flag.StringVar(&outDir, "out", DefaultOutputDir, "Output directory for sample SVG files")
	flag.StringVar(&modelPath, "onnx-model", "", "Segmentation ONNX model; when set, input images are run through the model to produce masks")
	flag.StringVar(&ortLib, "ort-lib", "", "Path to the onnxruntime shared library")
	flag.Float64Var(&proximity, "proximity", 10, "Merge proximity threshold in pixels")
	flag.Float64Var(&angle, "angle", 5, "Merge angle threshold in degrees")
	flag.Float64Var(&binarize, "binarize", float64(raster.DefaultBinarizeThreshold), "Mask binarization threshold in [0,1]")
	flag.IntVar(&workers, "workers", DefaultWorkers, "Worker goroutines for batch processing")
	flag.Parse()

	if masksDir == "" {
		log.Fatal("missing -masks directory")
	}

	files, err := util.LoadDirectoryMaskFiles(masksDir)
	if err != nil {
		log.Fatalf("load masks from %s: %v", masksDir, err)
	}
	if len(files) == 0 {
		log.Fatalf("no sample mask files found in %s", masksDir)
	}

	var predictor *inference.Predictor
	if modelPath != "" {
		predictor, err = inference.NewPredictor(inference.Config{
			ModelPath:         modelPath,
			LibraryPath:       ortLib,
			BinarizeThreshold: float32(binarize),
		})
		if err != nil {
			log.Fatalf("initialize predictor: %v", err)
		}
		defer predictor.Close()
		fmt.Printf("✅ Segmentation model loaded: %s\n", modelPath)
	}

	samples := loadSamples(files, predictor, float32(binarize))
	if len(samples) == 0 {
		log.Fatal("no usable samples")
	}

	cfg := pipeline.DefaultConfig()
	cfg.BinarizeThreshold = float32(binarize)
	cfg.Merge.ProximityThreshold = float32(proximity)
	cfg.Merge.AngleThreshold = float32(angle)

	vec := pipeline.New(cfg, export.NewWriter(outDir))
	results := vec.Batch(samples, workers)

	written, empty, failed := 0, 0, 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			log.Printf("sample %d: %v — skipped", r.Index, r.Err)
		case r.Path == "":
			empty++
			log.Printf("No lines detected for sample %d", r.Index)
		default:
			written++
		}
	}
	fmt.Printf("Processed %d samples: %d written to %s, %d without lines, %d failed\n",
		len(results), written, outDir, empty, failed)

	if failed == len(results) {
		os.Exit(1)
	}
}

// loadSamples converts mask files to pipeline samples, running them through
// the segmentation model when one is configured. A sample that cannot be
// decoded is logged and skipped.
func loadSamples(files []util.MaskFile, predictor *inference.Predictor, threshold float32) []pipeline.Sample {
	samples := make([]pipeline.Sample, 0, len(files))
	for _, f := range files {
		mask, err := loadMask(f, predictor, threshold)
		if err != nil {
			log.Printf("sample %d (%s): %v — skipped", f.Index, f.Path, err)
			continue
		}
		samples = append(samples, pipeline.Sample{Index: f.Index, Mask: mask})
	}
	return samples
}

func loadMask(f util.MaskFile, predictor *inference.Predictor, threshold float32) (*raster.Mask, error) {
	if predictor == nil {
		return cvio.DecodeMask(f.Data, threshold)
	}
	img, _, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return nil, err
	}
	return predictor.Predict(img)
}
