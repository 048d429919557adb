package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultBaseURL = "http://127.0.0.1:8080"
	numWorkers     = 50
	testDuration   = 10 * time.Second
	numUsers       = 200
	numKeywords    = 40
)

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

type client struct {
	baseURL string
	tokens  []string
}

func main() {
	baseURL := os.Getenv("PINGERCONF_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	secret := os.Getenv("PINGERCONF_AUTH_SECRET")
	if secret == "" {
		fmt.Println("PINGERCONF_AUTH_SECRET must match the server's auth.secret")
		os.Exit(1)
	}

	fmt.Println("=== PingerConfig Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Users: %d\n\n", numWorkers, testDuration, numUsers)

	c, err := newClient(baseURL, secret)
	if err != nil {
		fmt.Printf("FAILED: %s\n", err)
		os.Exit(1)
	}

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			os.Exit(1)
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Editing drafts (apply only) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return c.doApply(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (60% apply, 20% save, 20% GET /configs.json) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.60:
			return c.doApply(rng)
		case r < 0.80:
			return c.doSave(rng)
		default:
			return c.doGetDocument()
		}
	})

	fmt.Println("\n--- Phase 3: Save storm (every user saves) ---")
	runPhase(testDuration/2, func(rng *rand.Rand) result {
		return c.doSave(rng)
	})

	if err := c.verify(); err != nil {
		fmt.Printf("\nVERIFY FAILED: %s\n", err)
		os.Exit(1)
	}
	fmt.Println("\nVerify: every saved user kept its own record")
}

func newClient(baseURL, secret string) (*client, error) {
	c := &client{baseURL: baseURL, tokens: make([]string, numUsers)}
	for i := range c.tokens {
		claims := jwt.MapClaims{
			"discordId": userID(i),
			"exp":       time.Now().Add(time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			return nil, err
		}
		c.tokens[i] = token
	}
	return c, nil
}

func userID(i int) string {
	return fmt.Sprintf("9%018d", i)
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
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
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
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

	fmt.Printf("\n  %-24s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 90))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-24s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	fmt.Println("  " + strings.Repeat("-", 90))
	if totalOps == 0 {
		fmt.Println("  Total: 0 reqs")
		return
	}
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func (c *client) post(endpoint, path string, token string, body []byte, ok func(int) bool) result {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return result{endpoint, 0, 0, true}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, !ok(resp.StatusCode)}
}

// doApply upserts or deletes a random global keyword. Conflicts and missing
// keys are expected outcomes, not errors.
func (c *client) doApply(rng *rand.Rand) result {
	token := c.tokens[rng.Intn(len(c.tokens))]
	op := map[string]interface{}{
		"op":       "upsertGlobalKeyword",
		"key":      fmt.Sprintf("kw%d", rng.Intn(numKeywords)),
		"discount": rng.Intn(100),
	}
	if rng.Float64() < 0.2 {
		op["op"] = "deleteGlobalKeyword"
	}
	body, _ := json.Marshal(op)
	return c.post("POST /api/draft/apply", "/api/draft/apply", token, body, func(code int) bool {
		return code == http.StatusOK || code == http.StatusNotFound || code == http.StatusConflict
	})
}

func (c *client) doSave(rng *rand.Rand) result {
	token := c.tokens[rng.Intn(len(c.tokens))]
	return c.post("POST /api/draft/save", "/api/draft/save", token, nil, func(code int) bool {
		return code == http.StatusOK || code == http.StatusConflict
	})
}

func (c *client) doGetDocument() result {
	start := time.Now()
	resp, err := httpClient.Get(c.baseURL + "/configs.json")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /configs.json", 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /configs.json", resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

type draftState struct {
	Record json.RawMessage `json:"record"`
	Dirty  bool            `json:"dirty"`
}

// verify saves every draft once more and checks that the shared document
// holds exactly what each user's draft contains.
func (c *client) verify() error {
	expected := make(map[string]json.RawMessage, len(c.tokens))
	for i, token := range c.tokens {
		req, _ := http.NewRequest(http.MethodPost, c.baseURL+"/api/draft/save", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := httpClient.Do(req)
		if err != nil {
			return err
		}
		var state draftState
		err = json.NewDecoder(resp.Body).Decode(&state)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("user %s: %w", userID(i), err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("user %s: save returned %d", userID(i), resp.StatusCode)
		}
		expected[userID(i)] = state.Record
	}

	resp, err := httpClient.Get(c.baseURL + "/configs.json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	var doc map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return err
	}

	for id, want := range expected {
		got, ok := doc[id]
		if !ok {
			return fmt.Errorf("user %s missing from document", id)
		}
		var a, b interface{}
		_ = json.Unmarshal(want, &a)
		_ = json.Unmarshal(got, &b)
		wantNorm, _ := json.Marshal(a)
		gotNorm, _ := json.Marshal(b)
		if !bytes.Equal(wantNorm, gotNorm) {
			return fmt.Errorf("user %s: stored record differs from draft", id)
		}
	}
	return nil
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
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
