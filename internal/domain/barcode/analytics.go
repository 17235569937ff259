package barcode

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultMaxAttempts tamaño del historial en memoria de intentos de lectura.
	DefaultMaxAttempts = 10000
	// DefaultTopCodes cantidad de códigos en el ranking de más leídos.
	DefaultTopCodes = 10
)

// Attempt intento de lectura reportado por un cliente de escaneo.
type Attempt struct {
	Code     string
	Format   Format
	Success  bool
	Duration time.Duration // tiempo hasta decodificar (o hasta abandonar)
	At       time.Time
}

// CodeCount código y número de lecturas exitosas.
type CodeCount struct {
	Code  string
	Count int
}

// Report rendimiento agregado del escaneo.
type Report struct {
	TotalAttempts   int
	Successful      int
	Failed          int
	SuccessRate     decimal.Decimal // %
	AverageDuration time.Duration
	P95Duration     time.Duration
	ByFormat        map[Format]int
	TopCodes        []CodeCount
}

// ScanAnalytics registro acotado de intentos de lectura; los más antiguos se descartan al llenarse.
type ScanAnalytics struct {
	mu          sync.Mutex
	attempts    []Attempt
	maxAttempts int
	topN        int
}

// NewScanAnalytics construye el registro; valores <= 0 toman los de por defecto.
func NewScanAnalytics(maxAttempts, topN int) *ScanAnalytics {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if topN <= 0 {
		topN = DefaultTopCodes
	}
	return &ScanAnalytics{maxAttempts: maxAttempts, topN: topN}
}

// Record agrega un intento. Si el formato no viene informado se detecta desde el código.
func (a *ScanAnalytics) Record(at Attempt) {
	if at.Format == "" {
		at.Format = DetectFormat(at.Code)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.attempts) >= a.maxAttempts {
		a.attempts = append(a.attempts[:0], a.attempts[1:]...)
	}
	a.attempts = append(a.attempts, at)
}

// Reset vacía el historial.
func (a *ScanAnalytics) Reset() {
	a.mu.Lock()
	a.attempts = nil
	a.mu.Unlock()
}

// Report calcula las métricas sobre el historial actual.
func (a *ScanAnalytics) Report() Report {
	a.mu.Lock()
	attempts := append([]Attempt(nil), a.attempts...)
	topN := a.topN
	a.mu.Unlock()

	r := Report{
		TotalAttempts: len(attempts),
		ByFormat:      make(map[Format]int),
		TopCodes:      []CodeCount{},
	}
	if len(attempts) == 0 {
		return r
	}

	durations := make([]time.Duration, 0, len(attempts))
	var total time.Duration
	counts := make(map[string]int)
	for _, at := range attempts {
		r.ByFormat[at.Format]++
		durations = append(durations, at.Duration)
		total += at.Duration
		if at.Success {
			r.Successful++
			counts[at.Code]++
		}
	}
	r.Failed = r.TotalAttempts - r.Successful
	r.SuccessRate = decimal.NewFromInt(int64(r.Successful)).
		Div(decimal.NewFromInt(int64(r.TotalAttempts))).
		Mul(decimal.NewFromInt(100)).Round(2)
	r.AverageDuration = total / time.Duration(len(attempts))

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	r.P95Duration = durations[percentileIndex(len(durations), 95)]

	for code, n := range counts {
		r.TopCodes = append(r.TopCodes, CodeCount{Code: code, Count: n})
	}
	sort.Slice(r.TopCodes, func(i, j int) bool {
		if r.TopCodes[i].Count != r.TopCodes[j].Count {
			return r.TopCodes[i].Count > r.TopCodes[j].Count
		}
		return r.TopCodes[i].Code < r.TopCodes[j].Code
	})
	if len(r.TopCodes) > topN {
		r.TopCodes = r.TopCodes[:topN]
	}
	return r
}

// percentileIndex método nearest-rank sobre n valores ordenados.
func percentileIndex(n, p int) int {
	idx := (p*n+99)/100 - 1
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
