package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		server      = flag.String("server", "http://127.0.0.1:8080", "Control plane base URL")
		name        = flag.String("name", "example.com", "Query name")
		qtype       = flag.String("qtype", "A", "Query type")
		concurrency = flag.Int("concurrency", 50, "Number of concurrent workers")
		requests    = flag.Int("requests", 5000, "Total number of requests")
		timeout     = flag.Duration("timeout", 2*time.Second, "Per-request timeout")
	)
	flag.Parse()

	url := strings.TrimRight(*server, "/") + "/pdns/lookup/" + *name + "/" + strings.ToUpper(*qtype)

	conc := max(*concurrency, 1)
	total := max(*requests, 1)
	per := total / conc
	rem := total % conc

	client := &http.Client{
		Timeout:   *timeout,
		Transport: &http.Transport{MaxIdleConnsPerHost: conc},
	}

	lat := make([]float64, 0, total)
	var (
		latMu  sync.Mutex
		failed int
	)

	t0 := time.Now()
	g, ctx := errgroup.WithContext(context.Background())
	for i := range conc {
		n := per
		if i < rem {
			n++
		}
		if n <= 0 {
			continue
		}
		g.Go(func() error {
			for range n {
				start := time.Now()
				ok := fetch(ctx, client, url)
				ms := float64(time.Since(start).Microseconds()) / 1000.0
				latMu.Lock()
				if ok {
					lat = append(lat, ms)
				} else {
					failed++
				}
				latMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	elapsed := time.Since(t0).Seconds()

	if len(lat) == 0 {
		fmt.Printf("no successful requests (failed=%d)\n", failed)
		return
	}
	sort.Float64s(lat)
	p50 := percentile(lat, 50)
	p95 := percentile(lat, 95)
	p99 := percentile(lat, 99)
	rps := float64(len(lat)) / elapsed

	fmt.Printf("url=%s concurrency=%d requests=%d failed=%d\n", url, conc, len(lat), failed)
	fmt.Printf("elapsed_s=%.3f rps=%.1f\n", elapsed, rps)
	fmt.Printf("latency_ms p50=%.3f p95=%.3f p99=%.3f min=%.3f max=%.3f\n", p50, p95, p99, lat[0], lat[len(lat)-1])
}

// fetch performs one lookup and reports whether it answered 200.
func fetch(ctx context.Context, client *http.Client, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := min(max(len(sorted)*p/100-1, 0), len(sorted)-1)
	return sorted[idx]
}
