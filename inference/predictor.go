// Package inference - ONNX segmentation model boundary.
//
// The pipeline's masks come from a trained segmentation model; this package
// is that collaborator's edge. A Predictor owns one onnxruntime session with
// fixed 1x1x160x160 input and output tensors, turns an input drawing into
// the model's single-channel float grid, and binarizes the output into a
// raster.Mask. Nothing else in the repository depends on how a mask was
// produced.
package inference

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
	"gorgonia.org/tensor"

	"github.com/sketchlab/go-vectorize/raster"
)

// InputSide is the square side length of the model's input and output grids.
const InputSide = 160

// Config holds the predictor settings.
type Config struct {
	// ModelPath is the path to the segmentation ONNX model file.
	ModelPath string
	// LibraryPath is the onnxruntime shared library path. Empty keeps the
	// loader's default search path.
	LibraryPath string
	// InputName is the model's input tensor name. Defaults to "input".
	InputName string
	// OutputName is the model's output tensor name. Defaults to "output".
	OutputName string
	// BinarizeThreshold is applied to the model's float output. Defaults to
	// raster.DefaultBinarizeThreshold.
	BinarizeThreshold float32
}

// Predictor runs a segmentation model over input drawings and emits binary
// masks. Not safe for concurrent use: the session's tensors are reused
// across calls.
type Predictor struct {
	session   *ort.AdvancedSession
	input     *ort.Tensor[float32]
	output    *ort.Tensor[float32]
	threshold float32
}

// NewPredictor creates a predictor for the given model.
//
// Arguments:
// - cfg: Predictor settings; ModelPath is required.
//
// Returns:
// - *Predictor: Ready-to-use predictor.
// - error: A wrapped onnxruntime setup error.
func NewPredictor(cfg Config) (*Predictor, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("inference: missing model path")
	}
	if cfg.InputName == "" {
		cfg.InputName = "input"
	}
	if cfg.OutputName == "" {
		cfg.OutputName = "output"
	}
	if cfg.BinarizeThreshold == 0 {
		cfg.BinarizeThreshold = raster.DefaultBinarizeThreshold
	}

	if cfg.LibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.LibraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, errors.Wrap(err, "initialize onnxruntime environment")
		}
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1, InputSide, InputSide))
	if err != nil {
		return nil, errors.Wrap(err, "create input tensor")
	}
	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1, InputSide, InputSide))
	if err != nil {
		inputTensor.Destroy()
		return nil, errors.Wrap(err, "create output tensor")
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrap(err, "create session options")
	}
	defer options.Destroy()

	session, err := ort.NewAdvancedSession(
		cfg.ModelPath,
		[]string{cfg.InputName},
		[]string{cfg.OutputName},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		options,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrapf(err, "create session for %s", cfg.ModelPath)
	}

	return &Predictor{
		session:   session,
		input:     inputTensor,
		output:    outputTensor,
		threshold: cfg.BinarizeThreshold,
	}, nil
}

// Predict runs the model on one drawing and returns the binarized predicted
// mask.
//
// Arguments:
// - img: Input drawing; resized to 160x160 and converted to grayscale.
//
// Returns:
// - *raster.Mask: The 160x160 binary mask.
// - error: A wrapped inference error.
func (p *Predictor) Predict(img image.Image) (*raster.Mask, error) {
	p.prepareInput(img)

	if err := p.session.Run(); err != nil {
		return nil, errors.Wrap(err, "run inference")
	}

	out := make([]float32, len(p.output.GetData()))
	copy(out, p.output.GetData())
	dense := tensor.New(tensor.WithShape(1, 1, InputSide, InputSide), tensor.WithBacking(out))
	return raster.FromDense(dense, p.threshold)
}

// prepareInput fills the session's input tensor with the normalized
// grayscale rendering of img.
func (p *Predictor) prepareInput(img image.Image) {
	data := p.input.GetData()

	// Resize to the model input size using the Lanczos3 algorithm.
	img = resize.Resize(InputSide, InputSide, img, resize.Lanczos3)

	i := 0
	for y := 0; y < InputSide; y++ {
		for x := 0; x < InputSide; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// BT.601 luma scaled to [0, 1].
			data[i] = (0.299*float32(r>>8) + 0.587*float32(g>>8) + 0.114*float32(b>>8)) / 255.0
			i++
		}
	}
}

// Close releases the session and its tensors.
func (p *Predictor) Close() {
	if p.input != nil {
		p.input.Destroy()
		p.input = nil
	}
	if p.output != nil {
		p.output.Destroy()
		p.output = nil
	}
	if p.session != nil {
		p.session.Destroy()
		p.session = nil
	}
}
