package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// GenerateRequest is the body of POST /api/polaroid-generate
type GenerateRequest struct {
	InputType    string `json:"input_type"`
	InputContent string `json:"input_content,omitempty"`
	StyleType    string `json:"style_type,omitempty"`
	Locale       string `json:"locale,omitempty"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Scenario     string
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests     int
	Completed         int
	TotalTime         time.Duration
	ResponseTimes     []time.Duration
	StatusCounts      map[int]int
	ErrorCounts       map[string]int
	ScenarioStats     map[string]int
	TotalResponseTime time.Duration
	Lock              sync.Mutex
}

// Scenario is one kind of request sent during the run
type Scenario struct {
	Name   string
	Quick  bool
	Replay bool // resend the previous Idempotency-Key of the same guest
	Body   GenerateRequest
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	guests := flag.Int("g", 10, "Number of guest identities to distribute load across")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	guestIDs := make([]string, *guests)
	for i := range guestIDs {
		guestIDs[i] = uuid.NewString()
	}

	scenarios := []Scenario{
		{Name: "Text classic", Body: GenerateRequest{InputType: "text", InputContent: "a cat on a windowsill", StyleType: "classic_polaroid", Locale: "en"}},
		{Name: "Text vintage", Body: GenerateRequest{InputType: "text", InputContent: "summer beach at dusk", StyleType: "vintage", Locale: "en"}},
		{Name: "Idempotent replay", Replay: true, Body: GenerateRequest{InputType: "text", InputContent: "mountain lake", Locale: "en"}},
		{Name: "Quick text", Quick: true, Body: GenerateRequest{InputContent: "portrait of an old sailor"}},
	}

	fmt.Printf("Load testing generation across %d guests\n", len(guestIDs))
	fmt.Printf("Concurrency: %d goroutines, total requests: %d, delay: %d ms\n", *concurrency, *totalRequests, *delayMs)

	stats := &TestStats{
		TotalRequests: *totalRequests,
		ResponseTimes: make([]time.Duration, 0, *totalRequests),
		StatusCounts:  make(map[int]int),
		ErrorCounts:   make(map[string]int),
		ScenarioStats: make(map[string]int),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(*baseURL, *delayMs, guestIDs, scenarios, jobs, results)
		}()
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			stats.Lock.Lock()
			stats.Completed++
			stats.ScenarioStats[result.Scenario]++
			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime
			if result.Error != nil {
				stats.ErrorCounts[result.Error.Error()]++
			} else {
				stats.StatusCounts[result.StatusCode]++
			}
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	ticker := time.NewTicker(time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			fmt.Printf("Progress: %d/%d requests completed\n", stats.Completed, stats.TotalRequests)
			stats.Lock.Unlock()
		}
	}()

	wg.Wait()
	close(results)
	<-collected
	ticker.Stop()

	stats.TotalTime = time.Since(startTime)
	printResults(stats)
}

func worker(baseURL string, delayMs int, guestIDs []string, scenarios []Scenario, jobs <-chan int, results chan<- TestResult) {
	client := &http.Client{Timeout: 2 * time.Minute}
	lastKey := make(map[string]string)

	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		guestID := guestIDs[rand.Intn(len(guestIDs))]
		scenario := scenarios[rand.Intn(len(scenarios))]

		path := "/api/polaroid-generate"
		var payload any = scenario.Body
		if scenario.Quick {
			path = "/api/mvp-generate"
			payload = map[string]string{"type": "text", "content": scenario.Body.InputContent}
		}

		jsonData, err := json.Marshal(payload)
		if err != nil {
			results <- TestResult{Scenario: scenario.Name, Error: err}
			continue
		}

		req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(jsonData))
		if err != nil {
			results <- TestResult{Scenario: scenario.Name, Error: err}
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Guest-Id", guestID)

		if !scenario.Quick {
			key := uuid.NewString()
			if previous, ok := lastKey[guestID]; ok && scenario.Replay {
				key = previous
			}
			lastKey[guestID] = key
			req.Header.Set("Idempotency-Key", key)
		}

		start := time.Now()
		resp, err := client.Do(req)
		result := TestResult{Scenario: scenario.Name, ResponseTime: time.Since(start)}
		if err != nil {
			result.Error = err
		} else {
			result.StatusCode = resp.StatusCode
			resp.Body.Close()
		}

		results <- result
	}
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func printResults(stats *TestStats) {
	sorted := make([]time.Duration, len(stats.ResponseTimes))
	copy(sorted, stats.ResponseTimes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var avg time.Duration
	if len(sorted) > 0 {
		avg = stats.TotalResponseTime / time.Duration(len(sorted))
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:  %d\n", stats.TotalRequests)
	fmt.Printf("Total Test Time: %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Throughput:      %.2f requests/second\n", float64(stats.Completed)/stats.TotalTime.Seconds())

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average: %v\n", avg)
	if len(sorted) > 0 {
		fmt.Printf("Minimum: %v\n", sorted[0])
		fmt.Printf("Maximum: %v\n", sorted[len(sorted)-1])
	}
	fmt.Printf("P50:     %v\n", percentile(sorted, 50))
	fmt.Printf("P90:     %v\n", percentile(sorted, 90))
	fmt.Printf("P99:     %v\n", percentile(sorted, 99))

	// 402 means a guest ran out of credit and 429 a rate limit rule kicked in
	fmt.Println("\n----------------- STATUS CODES -----------------")
	codes := make([]int, 0, len(stats.StatusCounts))
	for code := range stats.StatusCounts {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Printf("%d %-24s: %d\n", code, http.StatusText(code), stats.StatusCounts[code])
	}

	fmt.Println("\n----------------- SCENARIOS -----------------")
	for name, count := range stats.ScenarioStats {
		fmt.Printf("%-18s: %d\n", name, count)
	}

	if len(stats.ErrorCounts) > 0 {
		fmt.Println("\n----------------- TRANSPORT ERRORS -----------------")
		for msg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d\n", msg, count)
		}
	}
	fmt.Println("================================================")
}
