package main

import (
	"bytes"
	"fmt"
	json "github.com/goccy/go-json"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numEntities  = 200
	numProfiles  = 20
	numGroups    = 10
	numUsers     = 300
)

var kinds = []string{"club", "thunder"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== Meetup Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Entities: %d | Profiles: %d | Groups: %d\n\n", numEntities, numProfiles, numGroups)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Seeding groups ---")
	groups := seedGroups()
	if len(groups) == 0 {
		fmt.Println("FAILED: no groups created")
		return
	}
	fmt.Printf("Created %d groups\n", len(groups))

	fmt.Println("\n--- Phase 1: Recent list writes (POST/DELETE /recent) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.8 {
			return doAddRecent(rng)
		}
		return doRemoveRecent(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.30:
			return doAddRecent(rng)
		case r < 0.50:
			return doListRecent(rng)
		case r < 0.65:
			return doJoin(rng, groups)
		case r < 0.90:
			return doMembers(rng, groups)
		default:
			return doSetFilter(rng)
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.05:
			return doAddRecent(rng)
		case r < 0.45:
			return doListRecent(rng)
		case r < 0.85:
			return doMembers(rng, groups)
		default:
			return doGetFilter(rng)
		}
	})
}

func seedGroups() []string {
	ids := make([]string, 0, numGroups)
	for i := 0; i < numGroups; i++ {
		body := map[string]interface{}{
			"kind":       kinds[i%len(kinds)],
			"name":       fmt.Sprintf("group %d", i),
			"category":   "load",
			"maxMembers": 50,
			"creatorId":  i + 1,
			"nickname":   fmt.Sprintf("owner%d", i),
		}
		data, _ := json.Marshal(body)
		resp, err := httpClient.Post(baseURL+"/groups", "application/json", bytes.NewReader(data))
		if err != nil {
			continue
		}
		var created struct {
			ID string `json:"id"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&created)
		resp.Body.Close()
		if resp.StatusCode == http.StatusCreated && created.ID != "" {
			ids = append(ids, created.ID)
		}
	}
	return ids
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func profile(rng *rand.Rand) string {
	return fmt.Sprintf("p%d", rng.Intn(numProfiles))
}

func do(endpoint, method, url string, body []byte, ok func(int) bool) result {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return result{endpoint, 0, 0, true}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, !ok(resp.StatusCode)}
}

func is(codes ...int) func(int) bool {
	return func(code int) bool {
		for _, c := range codes {
			if c == code {
				return true
			}
		}
		return false
	}
}

func doAddRecent(rng *rand.Rand) result {
	kind := kinds[rng.Intn(len(kinds))]
	id := fmt.Sprintf("%s-%d", kind, rng.Intn(numEntities))
	data, _ := json.Marshal(map[string]interface{}{"id": id, "name": id, "imageUrl": "/img/" + id + ".png"})
	url := fmt.Sprintf("%s/recent?kind=%s&profile=%s", baseURL, kind, profile(rng))
	return do("POST /recent", http.MethodPost, url, data, is(http.StatusOK))
}

func doRemoveRecent(rng *rand.Rand) result {
	kind := kinds[rng.Intn(len(kinds))]
	url := fmt.Sprintf("%s/recent?kind=%s&profile=%s&id=%s-%d", baseURL, kind, profile(rng), kind, rng.Intn(numEntities))
	return do("DELETE /recent", http.MethodDelete, url, nil, is(http.StatusOK))
}

func doListRecent(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/recent?kind=%s&profile=%s", baseURL, kinds[rng.Intn(len(kinds))], profile(rng))
	return do("GET /recent", http.MethodGet, url, nil, is(http.StatusOK))
}

func doJoin(rng *rand.Rand, groups []string) result {
	user := rng.Intn(numUsers) + 100
	data, _ := json.Marshal(map[string]interface{}{
		"groupId":  groups[rng.Intn(len(groups))],
		"memberId": user,
		"nickname": fmt.Sprintf("user%d", user),
	})
	// repeat joins and full thunders are expected outcomes under load
	return do("POST /group/join", http.MethodPost, baseURL+"/group/join", data, is(http.StatusCreated, http.StatusConflict))
}

func doMembers(rng *rand.Rand, groups []string) result {
	url := fmt.Sprintf("%s/group/members?id=%s&viewer=%d", baseURL, groups[rng.Intn(len(groups))], rng.Intn(numUsers)+100)
	return do("GET /group/members", http.MethodGet, url, nil, is(http.StatusOK))
}

func doSetFilter(rng *rand.Rand) result {
	cats := []string{"sport", "music", "art", "study", "food"}
	rng.Shuffle(len(cats), func(i, j int) { cats[i], cats[j] = cats[j], cats[i] })
	data, _ := json.Marshal(map[string]interface{}{"categories": cats[:rng.Intn(len(cats))]})
	url := fmt.Sprintf("%s/filters?kind=%s&profile=%s", baseURL, kinds[rng.Intn(len(kinds))], profile(rng))
	return do("POST /filters", http.MethodPost, url, data, is(http.StatusOK))
}

func doGetFilter(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/filters?kind=%s&profile=%s", baseURL, kinds[rng.Intn(len(kinds))], profile(rng))
	return do("GET /filters", http.MethodGet, url, nil, is(http.StatusOK))
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
