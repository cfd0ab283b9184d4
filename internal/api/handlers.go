package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"roof-planner/internal/detect"
	"roof-planner/internal/imgutil"
	"roof-planner/internal/layout"
	"roof-planner/internal/render"
	"roof-planner/pkg/geometry"

	"github.com/gin-gonic/gin"
	"gocv.io/x/gocv"
)

// detectRoof accepts a multipart image upload and returns ranked boundary
// candidates. Unusable uploads are a structured success:false payload, not
// an HTTP error; zero candidates and timeouts are success:true with a
// diagnostic message.
func (s *Server) detectRoof(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		if file, err = c.FormFile("file"); err != nil {
			c.JSON(http.StatusOK, detect.Result{Success: false, Error: "no image uploaded"})
			return
		}
	}

	maxCandidates, err := strconv.Atoi(c.DefaultPostForm("max_candidates", "3"))
	if err != nil || maxCandidates < 1 {
		maxCandidates = 3
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusOK, detect.Result{Success: false, Error: "failed to read upload: " + err.Error()})
		return
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()

	// Alternative remote back-end behind the same output contract.
	if c.PostForm("use_segmentation") == "true" && s.segment != nil {
		buf := &bytes.Buffer{}
		if _, err := buf.ReadFrom(f); err != nil {
			c.JSON(http.StatusOK, detect.Result{Success: false, Error: "failed to read upload: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, s.segment.Detect(ctx, buf.Bytes(), maxCandidates))
		return
	}

	img, err := imgutil.Decode(f)
	if err != nil {
		c.JSON(http.StatusOK, detect.Result{Success: false, Error: "failed to decode image: " + err.Error()})
		return
	}

	opts := detect.DefaultOptions()
	opts.MaxCandidates = maxCandidates
	generator := s.generator
	if maxCandidates != detect.DefaultOptions().MaxCandidates {
		generator = detect.NewGenerator(opts)
	}

	// Detection can take from milliseconds to seconds; run it off the
	// request goroutine and collapse a deadline into the empty outcome.
	results := make(chan detect.Result, 1)
	go func() {
		results <- generator.Detect(img)
	}()

	select {
	case res := <-results:
		c.JSON(http.StatusOK, res)
	case <-ctx.Done():
		c.JSON(http.StatusOK, detect.EmptyResult("Detection timed out. Please try manual drawing."))
	}
}

// layoutRequest is the JSON body of POST /api/roof/layout. Zero-valued
// panel parameters fall back to the defaults.
type layoutRequest struct {
	RoofPolygon    []geometry.Point2D `json:"roof_polygon"`
	Obstacles      []layout.Obstacle  `json:"obstacles"`
	PanelWidthM    float64            `json:"panel_width_m"`
	PanelHeightM   float64            `json:"panel_height_m"`
	PanelPowerW    float64            `json:"panel_power_w"`
	SpacingM       float64            `json:"spacing_m"`
	PixelsPerMeter float64            `json:"pixels_per_meter"`
	Orientation    string             `json:"orientation"`
}

func (r layoutRequest) options() layout.Options {
	opts := layout.DefaultOptions()
	if r.PanelWidthM > 0 {
		opts.PanelWidthM = r.PanelWidthM
	}
	if r.PanelHeightM > 0 {
		opts.PanelHeightM = r.PanelHeightM
	}
	if r.PanelPowerW > 0 {
		opts.PanelPowerW = r.PanelPowerW
	}
	if r.SpacingM > 0 {
		opts.SpacingM = r.SpacingM
	}
	if r.PixelsPerMeter > 0 {
		opts.PixelsPerMeter = r.PixelsPerMeter
	}
	if r.Orientation != "" {
		opts.Orientation = r.Orientation
	}
	return opts
}

// overlayRequest is the "layout" form field of POST /api/roof/overlay: the
// confirmed polygon plus whatever obstacles and placements should be drawn.
type overlayRequest struct {
	RoofPolygon []geometry.Point2D      `json:"roof_polygon"`
	Obstacles   []layout.Obstacle       `json:"obstacles"`
	Panels      []layout.PanelPlacement `json:"panels"`
}

// renderOverlay draws the roof outline, obstacles and panel placements over
// the uploaded photo and returns the composite as PNG.
func (s *Server) renderOverlay(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		if file, err = c.FormFile("file"); err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "no image uploaded"})
			return
		}
	}

	var req overlayRequest
	if err := json.Unmarshal([]byte(c.PostForm("layout")), &req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "invalid layout field: " + err.Error()})
		return
	}
	if len(req.RoofPolygon) < 3 {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "roof polygon must have at least 3 points"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "failed to read upload: " + err.Error()})
		return
	}
	defer f.Close()

	img, err := imgutil.Decode(f)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "failed to decode image: " + err.Error()})
		return
	}

	mat := imgutil.ToMatBGR(img)
	defer mat.Close()

	vis := render.Overlay(mat, req.RoofPolygon, req.Obstacles, req.Panels)
	defer vis.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, vis)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "failed to encode overlay: " + err.Error()})
		return
	}
	defer buf.Close()

	c.Data(http.StatusOK, "image/png", buf.GetBytes())
}

// panelLayout packs panels into a confirmed roof polygon.
func (s *Server) panelLayout(c *gin.Context) {
	var req layoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, layout.Result{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	results := make(chan layout.Result, 1)
	go func() {
		results <- layout.Calculate(req.RoofPolygon, req.Obstacles, req.options())
	}()

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()

	select {
	case res := <-results:
		c.JSON(http.StatusOK, res)
	case <-ctx.Done():
		c.JSON(http.StatusOK, layout.Result{
			Success: true,
			Panels:  []layout.PanelPlacement{},
			Message: "Layout timed out. Please try a coarser scale.",
		})
	}
}
