package input

import "github.com/bnema/inputgate/internal/logger"

// ViewportBounds flattens the bounding rectangles of every canvas in
// container to left, top, right, bottom per canvas, in document order.
func ViewportBounds(container Container) []float64 {
	if container == nil {
		return nil
	}

	canvases := container.QueryAll(CanvasClass)
	bounds := make([]float64, 0, len(canvases)*4)
	for _, canvas := range canvases {
		r := canvas.BoundingRect()
		bounds = append(bounds, r.Left, r.Top, r.Right, r.Bottom)
	}
	return bounds
}

// ReportBounds sends the canvas geometry to the backend in one call and
// returns the number of canvases. With no canvas rendered the backend is
// not called at all.
func ReportBounds(container Container, backend Backend) int {
	bounds := ViewportBounds(container)
	regions := len(bounds) / 4
	if regions == 0 {
		logger.Debug("No canvas rendered, skipping viewport bounds")
		return 0
	}

	backend.BoundsOfViewports(bounds)
	logger.Debug("Reported viewport bounds", "regions", regions)
	return regions
}
