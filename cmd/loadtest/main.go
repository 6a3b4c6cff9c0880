// Команда loadtest нагружает HTTP API order-сервиса: оформляет заказы параллельными
// воркерами и печатает сводку по задержкам и кодам ответа.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type loadMode string

const (
	modePlace     loadMode = "place"
	modePlaceList loadMode = "place-list"
)

const (
	opPlace    = "POST /orders"
	opList     = "GET /orders"
	opScenario = "scenario"
)

type config struct {
	baseURL     string
	jwtSecret   string
	users       int
	total       int
	duration    time.Duration
	concurrency int
	timeout     time.Duration
	mode        loadMode
	productID   string
	productName string
	price       string
	quantity    int
	outputPath  string
}

type latencySummary struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

type operationReport struct {
	Calls     int64            `json:"calls"`
	Success   int64            `json:"success"`
	Failed    int64            `json:"failed"`
	ErrorRate float64          `json:"error_rate"`
	Statuses  map[string]int64 `json:"statuses"`
	LatencyMs latencySummary   `json:"latency_ms"`
}

type report struct {
	StartedAt         time.Time                  `json:"started_at"`
	DurationSeconds   float64                    `json:"duration_seconds"`
	TotalScenarios    int64                      `json:"total_scenarios"`
	FailedScenarios   int64                      `json:"failed_scenarios"`
	ErrorRate         float64                    `json:"error_rate"`
	RPS               float64                    `json:"rps"`
	ScenarioLatencyMs latencySummary             `json:"scenario_latency_ms"`
	Operations        map[string]operationReport `json:"operations"`
}

type operationStats struct {
	calls     int64
	failed    int64
	statuses  map[string]int64
	latencies []float64
}

// collector копит результаты вызовов от всех воркеров.
type collector struct {
	mu  sync.Mutex
	ops map[string]*operationStats
}

func newCollector() *collector {
	return &collector{ops: make(map[string]*operationStats)}
}

// record учитывает вызов; label - HTTP-статус или "transport_error".
func (c *collector) record(op string, latency time.Duration, label string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats, exists := c.ops[op]
	if !exists {
		stats = &operationStats{statuses: make(map[string]int64)}
		c.ops[op] = stats
	}
	stats.calls++
	if !ok {
		stats.failed++
	}
	stats.statuses[label]++
	stats.latencies = append(stats.latencies, float64(latency.Microseconds())/1000.0)
}

func (c *collector) buildReport(startedAt time.Time, elapsed time.Duration) report {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := report{
		StartedAt:       startedAt.UTC(),
		DurationSeconds: elapsed.Seconds(),
		Operations:      make(map[string]operationReport, len(c.ops)),
	}
	for name, stats := range c.ops {
		statuses := make(map[string]int64, len(stats.statuses))
		for label, count := range stats.statuses {
			statuses[label] = count
		}
		op := operationReport{
			Calls:     stats.calls,
			Success:   stats.calls - stats.failed,
			Failed:    stats.failed,
			ErrorRate: ratio(stats.failed, stats.calls),
			Statuses:  statuses,
			LatencyMs: buildLatencySummary(stats.latencies),
		}
		if name == opScenario {
			result.TotalScenarios = op.Calls
			result.FailedScenarios = op.Failed
			result.ErrorRate = op.ErrorRate
			result.ScenarioLatencyMs = op.LatencyMs
			continue
		}
		result.Operations[name] = op
	}
	if elapsed > 0 {
		result.RPS = float64(result.TotalScenarios) / elapsed.Seconds()
	}
	return result
}

func parseConfig(args []string) (config, error) {
	var cfg config
	var mode string

	flags := flag.NewFlagSet("loadtest", flag.ContinueOnError)
	flags.StringVar(&cfg.baseURL, "url", "http://localhost:3003", "order service base URL")
	flags.StringVar(&cfg.jwtSecret, "jwt-secret", "your-secret-key", "HMAC secret shared with the order service")
	flags.IntVar(&cfg.users, "users", 10, "number of distinct users to spread orders across")
	flags.IntVar(&cfg.total, "total", 400, "scenarios to execute when -duration is not set")
	flags.DurationVar(&cfg.duration, "duration", 0, "optional time-based run duration (e.g. 1m)")
	flags.IntVar(&cfg.concurrency, "concurrency", 20, "number of concurrent workers")
	flags.DurationVar(&cfg.timeout, "timeout", 5*time.Second, "per-request timeout")
	flags.StringVar(&mode, "mode", string(modePlace), "load mode: place | place-list")
	flags.StringVar(&cfg.productID, "product-id", "1", "ordered product id")
	flags.StringVar(&cfg.productName, "product-name", "Load Widget", "ordered product name")
	flags.StringVar(&cfg.price, "price", "9.99", "unit price")
	flags.IntVar(&cfg.quantity, "quantity", 1, "ordered quantity")
	flags.StringVar(&cfg.outputPath, "output", "", "optional JSON report output file path")
	if err := flags.Parse(args); err != nil {
		return cfg, err
	}

	switch loadMode(strings.TrimSpace(mode)) {
	case modePlace:
		cfg.mode = modePlace
	case modePlaceList:
		cfg.mode = modePlaceList
	default:
		return cfg, fmt.Errorf("unsupported mode: %s", mode)
	}

	switch {
	case strings.TrimSpace(cfg.baseURL) == "":
		return cfg, errors.New("url is required")
	case cfg.users <= 0:
		return cfg, errors.New("users must be > 0")
	case cfg.duration < 0:
		return cfg, errors.New("duration must be >= 0")
	case cfg.duration == 0 && cfg.total <= 0:
		return cfg, errors.New("total must be > 0 when duration is not set")
	case cfg.concurrency <= 0:
		return cfg, errors.New("concurrency must be > 0")
	case cfg.timeout <= 0:
		return cfg, errors.New("timeout must be > 0")
	case cfg.quantity <= 0:
		return cfg, errors.New("quantity must be > 0")
	}
	if _, err := strconv.ParseFloat(cfg.price, 64); err != nil {
		return cfg, fmt.Errorf("invalid price %q", cfg.price)
	}
	cfg.baseURL = strings.TrimRight(cfg.baseURL, "/")
	return cfg, nil
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	result, err := runLoad(context.Background(), cfg, &http.Client{})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "load test failed: %v\n", err)
		os.Exit(1)
	}

	printReport(os.Stdout, result, cfg)
	if cfg.outputPath != "" {
		if err := writeJSONReport(cfg.outputPath, result); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			os.Exit(1)
		}
	}
	if result.FailedScenarios > 0 {
		os.Exit(1)
	}
}

// runLoad выпускает токены пользователей и гоняет сценарии до исчерпания total или duration.
func runLoad(ctx context.Context, cfg config, client *http.Client) (report, error) {
	issuer := auth.NewIssuer(cfg.jwtSecret, time.Hour)
	tokens := make([]string, cfg.users)
	for i := range tokens {
		token, err := issuer.Issue(domain.User{ID: fmt.Sprintf("load-user-%d", i), Username: fmt.Sprintf("load%d", i)})
		if err != nil {
			return report{}, err
		}
		tokens[i] = token
	}

	startedAt := time.Now()
	col := newCollector()
	jobs := make(chan int, cfg.concurrency*2)

	var wg sync.WaitGroup
	for w := 0; w < cfg.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				runScenario(ctx, client, cfg, tokens[id%len(tokens)], col)
			}
		}()
	}

	dispatchJobs(ctx, jobs, cfg)
	wg.Wait()

	return col.buildReport(startedAt, time.Since(startedAt)), nil
}

func dispatchJobs(ctx context.Context, jobs chan<- int, cfg config) {
	defer close(jobs)

	if cfg.duration <= 0 {
		for i := 0; i < cfg.total; i++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
		return
	}

	timer := time.NewTimer(cfg.duration)
	defer timer.Stop()
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			return
		case jobs <- i:
		}
	}
}

func runScenario(ctx context.Context, client *http.Client, cfg config, token string, col *collector) {
	start := time.Now()
	ok := callPlaceOrder(ctx, client, cfg, token, col)
	if ok && cfg.mode == modePlaceList {
		ok = call(ctx, client, cfg, opList, http.MethodGet, "/orders", token, nil, http.StatusOK, col)
	}

	label := "ok"
	if !ok {
		label = "failed"
	}
	col.record(opScenario, time.Since(start), label, ok)
}

func callPlaceOrder(ctx context.Context, client *http.Client, cfg config, token string, col *collector) bool {
	body, _ := json.Marshal(map[string]any{
		"productId":   cfg.productID,
		"productName": cfg.productName,
		"quantity":    cfg.quantity,
		"price":       json.Number(cfg.price),
	})
	return call(ctx, client, cfg, opPlace, http.MethodPost, "/orders", token, body, http.StatusCreated, col)
}

func call(
	ctx context.Context,
	client *http.Client,
	cfg config,
	op, method, path, token string,
	body []byte,
	want int,
	col *collector,
) bool {
	start := time.Now()
	reqCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, cfg.baseURL+path, bytes.NewReader(body))
	if err != nil {
		col.record(op, time.Since(start), "request_error", false)
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		col.record(op, time.Since(start), "transport_error", false)
		return false
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	ok := resp.StatusCode == want
	col.record(op, time.Since(start), strconv.Itoa(resp.StatusCode), ok)
	return ok
}

func writeJSONReport(path string, result report) error {
	cleanPath := filepath.Clean(path)
	if cleanPath == "." || cleanPath == string(filepath.Separator) {
		return errors.New("output path must point to a file")
	}
	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return fmt.Errorf("output path must be inside current directory: %s", path)
	}

	// #nosec G304 -- path is an explicit CLI output parameter for local load-test reports.
	file, err := os.Create(cleanPath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func printReport(w io.Writer, result report, cfg config) {
	_, _ = fmt.Fprintln(w, "Load test summary")
	_, _ = fmt.Fprintf(w, "mode=%s scenarios=%d failed=%d error_rate=%.4f\n",
		cfg.mode, result.TotalScenarios, result.FailedScenarios, result.ErrorRate)
	_, _ = fmt.Fprintf(w, "duration=%.2fs rps=%.2f\n", result.DurationSeconds, result.RPS)
	_, _ = fmt.Fprintf(w, "scenario latency ms: p50=%.2f p95=%.2f p99=%.2f max=%.2f\n",
		result.ScenarioLatencyMs.P50, result.ScenarioLatencyMs.P95, result.ScenarioLatencyMs.P99, result.ScenarioLatencyMs.Max)

	names := make([]string, 0, len(result.Operations))
	for name := range result.Operations {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		op := result.Operations[name]
		_, _ = fmt.Fprintf(w, "%s: calls=%d failed=%d p95=%.2fms statuses=%v\n",
			name, op.Calls, op.Failed, op.LatencyMs.P95, op.Statuses)
	}
}

func buildLatencySummary(values []float64) latencySummary {
	if len(values) == 0 {
		return latencySummary{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return latencySummary{
		Min: sorted[0],
		Max: sorted[len(sorted)-1],
		Avg: sum / float64(len(sorted)),
		P50: percentile(sorted, 50),
		P95: percentile(sorted, 95),
		P99: percentile(sorted, 99),
	}
}

// percentile интерполирует между соседними рангами отсортированной выборки.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p / 100.0) * float64(len(sorted)-1)
	lower, upper := int(math.Floor(rank)), int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	return sorted[lower] + (sorted[upper]-sorted[lower])*(rank-float64(lower))
}

func ratio(failed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(failed) / float64(total)
}
