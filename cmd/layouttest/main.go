// Command layouttest packs panels into a roof polygon described by a JSON
// file and prints the resulting layout. Optionally renders the placement
// over the source photo.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"roof-planner/internal/imgutil"
	"roof-planner/internal/layout"
	"roof-planner/internal/render"
	"roof-planner/pkg/geometry"

	"gocv.io/x/gocv"
)

type request struct {
	RoofPolygon []geometry.Point2D `json:"roof_polygon"`
	Obstacles   []layout.Obstacle  `json:"obstacles"`
	Options     layout.Options     `json:"options"`
}

func main() {
	reqPath := flag.String("request", "", "path to the layout request JSON")
	imagePath := flag.String("image", "", "optional source photo for the overlay")
	outPath := flag.String("out", "", "optional overlay output path")
	flag.Parse()

	if *reqPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*reqPath)
	if err != nil {
		log.Fatalf("read request: %v", err)
	}

	req := request{Options: layout.DefaultOptions()}
	if err := json.Unmarshal(data, &req); err != nil {
		log.Fatalf("parse request: %v", err)
	}

	planner, err := layout.NewPlanner(req.RoofPolygon, req.Obstacles)
	if err != nil {
		log.Fatalf("invalid roof polygon: %v", err)
	}
	result := planner.Plan(req.Options)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("encode result: %v", err)
	}
	fmt.Println(string(out))

	if *outPath != "" && *imagePath != "" {
		img, err := imgutil.LoadFile(*imagePath)
		if err != nil {
			log.Fatalf("load image: %v", err)
		}
		mat := imgutil.ToMatBGR(img)
		defer mat.Close()

		vis := render.Overlay(mat, planner.Polygon(), req.Obstacles, result.Panels)
		defer vis.Close()

		if ok := gocv.IMWrite(*outPath, vis); !ok {
			log.Fatalf("write overlay: %s", *outPath)
		}
		log.Printf("overlay written to %s", *outPath)
	}
}
