package overlay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ironsheep/region-overlay-mcp/internal/config"
	"github.com/ironsheep/region-overlay-mcp/internal/detect"
	"github.com/ironsheep/region-overlay-mcp/internal/frame"
	"github.com/ironsheep/region-overlay-mcp/internal/region"
	"github.com/ironsheep/region-overlay-mcp/internal/render"
)

var (
	// ErrClassifierLoad marks a cascade that could not be loaded or run.
	ErrClassifierLoad = errors.New("classifier load failure")

	// ErrSourceImage marks a frame that could not be materialized.
	ErrSourceImage = errors.New("unable to load the source image")

	// ErrAbortedBuild marks a frame build cancelled by the host.
	ErrAbortedBuild = errors.New("frame build aborted")
)

// State is a position in the frame lifecycle.
type State int32

const (
	Unopened State = iota
	Built
	Detected
	Rendering
	Closed
)

func (s State) String() string {
	switch s {
	case Unopened:
		return "unopened"
	case Built:
		return "built"
	case Detected:
		return "detected"
	case Rendering:
		return "rendering"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// Option customizes a Node.
type Option func(*Node)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(n *Node) {
		n.logger = l
	}
}

// WithDetector overrides the detector adapter named in the configuration.
func WithDetector(d detect.Detector) Option {
	return func(n *Node) {
		n.detector = d
	}
}

// Node is one region-overlay operator instance. Its render policy and border
// color are fixed at construction.
type Node struct {
	cfg      config.Config
	params   detect.Params
	detector detect.Detector
	renderer *render.Renderer
	logger   *slog.Logger

	// mu serializes Open and Close. Engine never takes it: everything it reads
	// is written before state is stored as Detected.
	mu         sync.Mutex
	state      atomic.Int32
	src        frame.Frame
	noSource   bool
	regions    region.Set
	classifier detect.Classifier
	warning    error
}

// New validates cfg and builds a node.
func New(cfg config.Config, opts ...Option) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	policy, err := cfg.RenderPolicy()
	if err != nil {
		return nil, err
	}
	border, err := cfg.Border()
	if err != nil {
		return nil, err
	}

	n := &Node{
		cfg:      cfg,
		params:   cfg.Params(),
		renderer: render.New(policy, border),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}

	if n.detector == nil && cfg.CascadeFile != "" {
		d, err := detect.New(cfg.Detector)
		if err != nil {
			return nil, err
		}
		n.detector = d
	}

	return n, nil
}

// Policy returns the node's render policy.
func (n *Node) Policy() render.Policy {
	return n.renderer.Policy()
}

// State returns the current lifecycle state.
func (n *Node) State() State {
	return State(n.state.Load())
}

// Regions returns the frozen region set of the open frame. It is absent before
// Open succeeds and after Close.
func (n *Node) Regions() region.Set {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.regions
}

// Warning returns the non-fatal problem recorded by the last Open, if any. The
// error wraps ErrClassifierLoad.
func (n *Node) Warning() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.warning
}

// Open prepares f for rendering. A nil f means no input is connected; the node
// then renders the checkerboard placeholder.
//
// Detector state from any previous frame is reset before the build starts. On
// error the node is left Unopened.
func (n *Node) Open(ctx context.Context, f frame.Frame) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.reset()

	if f == nil {
		n.noSource = true
		n.state.Store(int32(Detected))
		n.logger.Debug("no input connected, rendering placeholder")
		return nil
	}

	start := time.Now()
	img, err := detect.Build(ctx, f)
	if err != nil {
		if errors.Is(err, detect.ErrAborted) {
			n.logger.Debug("frame build aborted", "error", err)
			return fmt.Errorf("%w: %w", ErrAbortedBuild, err)
		}
		n.logger.Error("unable to load the source image", "error", err)
		return fmt.Errorf("%w: %w", ErrSourceImage, err)
	}
	defer img.Release()

	n.src = f
	n.state.Store(int32(Built))

	n.regions = n.detect(img, f.Height())
	n.state.Store(int32(Detected))

	n.logger.Debug("frame opened",
		"width", f.Width(),
		"height", f.Height(),
		"regions_present", n.regions.Present(),
		"regions", n.regions.Len(),
		"elapsed", time.Since(start))
	return nil
}

// detect runs the classifier once over img. Any failure is downgraded to a
// warning and yields an absent set.
func (n *Node) detect(img *detect.Image, frameHeight int) region.Set {
	path := n.cfg.CascadeFile
	if path == "" || n.detector == nil {
		return region.Absent()
	}

	c, err := n.detector.LoadClassifier(path)
	if err != nil {
		n.warn(fmt.Errorf("%w: %w", ErrClassifierLoad, err), path)
		return region.Absent()
	}
	n.classifier = c

	res, err := n.detector.Detect(img, c, n.params)
	if err != nil {
		n.warn(fmt.Errorf("%w: detection failed: %w", ErrClassifierLoad, err), path)
		return region.Absent()
	}

	return region.Build(res.Rects, res.Scale, frameHeight)
}

func (n *Node) warn(err error, path string) {
	n.warning = err
	n.logger.Warn("detection disabled for frame, passing source through",
		"path", path,
		"error", err)
}

// Engine renders scanline y into out, over columns [out.X, out.R) and the
// channels out carries.
//
// It returns false when the policy declines the row (BinaryMask with no region
// on it); the host should then apply its default value of 0. Engine panics if
// the node has not been opened successfully.
func (n *Node) Engine(y int, out *frame.Row) bool {
	st := n.State()
	if st != Detected && st != Rendering {
		panic(fmt.Sprintf("overlay: Engine called in state %s", st))
	}
	n.state.CompareAndSwap(int32(Detected), int32(Rendering))

	if n.noSource {
		render.Checkerboard(y, n.cfg.Checkerboard.Width, n.cfg.Checkerboard.Height, out)
		return true
	}
	return n.renderer.Render(n.src, n.regions, y, out)
}

// Close releases the classifier and forgets the frame.
func (n *Node) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.reset()
	n.state.Store(int32(Closed))
}

// reset clears all per-frame state. Callers hold mu.
func (n *Node) reset() {
	if n.classifier != nil {
		if err := n.classifier.Close(); err != nil {
			n.logger.Warn("failed to release classifier", "error", err)
		}
		n.classifier = nil
	}
	n.state.Store(int32(Unopened))
	n.src = nil
	n.noSource = false
	n.regions = region.Absent()
	n.warning = nil
}
