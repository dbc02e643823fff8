package bench

import (
	"bytes"
	"fmt"
	"testing"

	"dataprep/internal/config"
	"dataprep/internal/pipeline"
)

// BenchmarkPreprocess exercises the hot path of the full pipeline on a
// synthetic CSV with realistic column shapes: an ID, a category, a currency
// amount, a date, and a free-text note.
//
// Run with:
//
//	go test -run=^$ -bench ^BenchmarkPreprocess$ -cpuprofile cpu.out -memprofile mem.out -count=1
func BenchmarkPreprocess(b *testing.B) {
	buf := syntheticCSV(5000)
	opts := config.Default()

	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := pipeline.Preprocess(buf, "bench.csv", opts)
		if err != nil {
			b.Fatalf("Preprocess: %v", err)
		}
		if res.ProcessedRows == 0 {
			b.Fatal("Preprocess returned no rows")
		}
	}
}

func syntheticCSV(rows int) []byte {
	var buf bytes.Buffer
	buf.WriteString("id,segment,amount,signup_date,note\n")
	segments := []string{"retail", "wholesale", "online", "partner"}
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&buf, "%d,%s,\"$%d,%03d.50\",2023-%02d-%02d,customer signed up via referral program\n",
			i+1,
			segments[i%len(segments)],
			1+i%9, i%1000,
			1+i%12, 1+i%28,
		)
	}
	return buf.Bytes()
}
