package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/aldasoro/waymark/internal/core/domain"
	"github.com/aldasoro/waymark/internal/pkg/geodesy"
)

// measure is a one-shot CLI for the distance engine. Either measure a pair:
//
//	measure -from 43.263,-2.935 -to 40.416,-3.703 -method spherical
//
// or a whole path:
//
//	measure -path "0,0;3,4;6,8" -method euclidean -workers 4
func main() {
	from := flag.String("from", "", "start point as lat,lon")
	to := flag.String("to", "", "end point as lat,lon")
	path := flag.String("path", "", "semicolon-separated lat,lon list")
	method := flag.String("method", "spherical", "euclidean, spherical, haversine or vincenty")
	workers := flag.Int("workers", 0, "path worker pool size (0 = one per CPU)")
	flag.Parse()

	switch {
	case *path != "":
		measurePath(*path, *method, *workers)
	case *from != "" && *to != "":
		measurePair(*from, *to, *method)
	default:
		log.Fatal("either -path or both -from and -to are required")
	}
}

func measurePair(from, to, method string) {
	p, err := parsePoint(from)
	if err != nil {
		log.Fatalf("-from: %v", err)
	}
	q, err := parsePoint(to)
	if err != nil {
		log.Fatalf("-to: %v", err)
	}

	switch method {
	case "euclidean":
		seg := domain.Segment{Start: p, End: q}
		fmt.Printf("%.6f degrees\n", seg.EuclideanDistance())
	case "spherical", "haversine":
		fmt.Printf("%.6f km\n", geodesy.Haversine(p, q, geodesy.WGS84Sphere))
	case "vincenty":
		d, err := geodesy.Vincenty(p, q, geodesy.WGS84)
		if err != nil {
			log.Fatalf("vincenty: %v", err)
		}
		fmt.Printf("%.3f m\n", d)
	default:
		log.Fatalf("unknown method %q", method)
	}
}

func measurePath(raw, method string, workers int) {
	m, err := geodesy.ParseMethodology(method)
	if err != nil {
		log.Fatal(err)
	}

	parts := strings.Split(raw, ";")
	points := make([]domain.Point, 0, len(parts))
	for _, part := range parts {
		p, err := parsePoint(part)
		if err != nil {
			log.Fatalf("-path: %v", err)
		}
		points = append(points, p)
	}
	if len(points) < 2 {
		log.Fatalf("-path needs at least 2 points, got %d", len(points))
	}

	segments := make([]domain.Segment, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		seg, err := domain.NewSegment(points[i-1], points[i])
		if err != nil {
			log.Fatal(err)
		}
		segments = append(segments, seg)
	}

	path, err := domain.NewPath(segments...)
	if err != nil {
		log.Fatal(err)
	}

	d := geodesy.PathDistance(path, m, geodesy.WGS84Sphere, workers)
	fmt.Printf("%.6f %s (%d segments)\n", d, m.Unit(), path.Len())
}

func parsePoint(s string) (domain.Point, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return domain.Point{}, fmt.Errorf("want lat,lon, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("latitude %q: %w", parts[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("longitude %q: %w", parts[1], err)
	}
	return domain.NewPoint(lat, lon), nil
}
