// Command detecttest runs boundary detection on a single image and prints
// the candidates as JSON. Useful for tuning strategies against sample
// rooftop photos without the HTTP server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"roof-planner/internal/detect"
	"roof-planner/internal/imgutil"
	"roof-planner/internal/render"

	"gocv.io/x/gocv"
)

func main() {
	imagePath := flag.String("image", "", "path to the rooftop photo")
	outPath := flag.String("out", "", "optional overlay output path (best candidate outlined)")
	maxCandidates := flag.Int("max", 3, "maximum candidates to return")
	flag.Parse()

	if *imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	img, err := imgutil.LoadFile(*imagePath)
	if err != nil {
		log.Fatalf("load image: %v", err)
	}

	opts := detect.DefaultOptions()
	opts.MaxCandidates = *maxCandidates
	result := detect.NewGenerator(opts).Detect(img)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("encode result: %v", err)
	}
	fmt.Println(string(out))

	if *outPath != "" && len(result.Candidates) > 0 {
		mat := imgutil.ToMatBGR(img)
		defer mat.Close()

		vis := render.Overlay(mat, result.Candidates[0].Points, nil, nil)
		defer vis.Close()

		if ok := gocv.IMWrite(*outPath, vis); !ok {
			log.Fatalf("write overlay: %s", *outPath)
		}
		log.Printf("overlay written to %s", *outPath)
	}
}
